package mocks

import (
	"context"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	SaveFunc              func(ctx context.Context, user *domain.User) error
	FindByIDFunc          func(ctx context.Context, id string) (*domain.User, error)
	FindByEmailFunc       func(ctx context.Context, email string) (*domain.User, error)
	UpdatePreferencesFunc func(ctx context.Context, id string, prefs domain.AccessibilityPreferences) error
	UpdateConsentsFunc    func(ctx context.Context, id string, consents domain.Consents) error
}

func (m *MockUserRepository) Save(ctx context.Context, user *domain.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) UpdatePreferences(ctx context.Context, id string, prefs domain.AccessibilityPreferences) error {
	if m.UpdatePreferencesFunc != nil {
		return m.UpdatePreferencesFunc(ctx, id, prefs)
	}
	return nil
}

func (m *MockUserRepository) UpdateConsents(ctx context.Context, id string, consents domain.Consents) error {
	if m.UpdateConsentsFunc != nil {
		return m.UpdateConsentsFunc(ctx, id, consents)
	}
	return nil
}

// MockCourseRepository is a mock implementation of CourseRepository
type MockCourseRepository struct {
	SaveFunc          func(ctx context.Context, course *domain.Course) error
	FindByIDFunc      func(ctx context.Context, id string) (*domain.Course, error)
	FindByUserIDFunc  func(ctx context.Context, userID string) ([]domain.Course, error)
	CountByUserIDFunc func(ctx context.Context, userID string) (int64, error)
}

func (m *MockCourseRepository) Save(ctx context.Context, course *domain.Course) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, course)
	}
	return nil
}

func (m *MockCourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCourseRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Course, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return []domain.Course{}, nil
}

func (m *MockCourseRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	if m.CountByUserIDFunc != nil {
		return m.CountByUserIDFunc(ctx, userID)
	}
	return 0, nil
}

// MockAppointmentRepository is a mock implementation of AppointmentRepository
type MockAppointmentRepository struct {
	SaveFunc         func(ctx context.Context, apt *domain.Appointment) error
	FindByIDFunc     func(ctx context.Context, id string) (*domain.Appointment, error)
	FindByUserIDFunc func(ctx context.Context, userID string) ([]domain.Appointment, error)
	UpdateStatusFunc func(ctx context.Context, id string, status domain.AppointmentStatus) error
}

func (m *MockAppointmentRepository) Save(ctx context.Context, apt *domain.Appointment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, apt)
	}
	return nil
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAppointmentRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Appointment, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return []domain.Appointment{}, nil
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	SaveFunc         func(ctx context.Context, n *domain.Notification) error
	FindByUserIDFunc func(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkReadFunc     func(ctx context.Context, id string) error
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *domain.Notification) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, n)
	}
	return nil
}

func (m *MockNotificationRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Notification, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return []domain.Notification{}, nil
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id string) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, id)
	}
	return nil
}

// MockTicketRepository is a mock implementation of TicketRepository
type MockTicketRepository struct {
	SaveFunc          func(ctx context.Context, ticket *domain.Ticket) error
	FindAllFunc       func(ctx context.Context) ([]domain.Ticket, error)
	ResolveFunc       func(ctx context.Context, id string) error
	CountByStatusFunc func(ctx context.Context, status domain.TicketStatus) (int64, error)
}

func (m *MockTicketRepository) Save(ctx context.Context, ticket *domain.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, ticket)
	}
	return nil
}

func (m *MockTicketRepository) FindAll(ctx context.Context) ([]domain.Ticket, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return []domain.Ticket{}, nil
}

func (m *MockTicketRepository) Resolve(ctx context.Context, id string) error {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, id)
	}
	return nil
}

func (m *MockTicketRepository) CountByStatus(ctx context.Context, status domain.TicketStatus) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

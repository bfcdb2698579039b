package ports

import (
	"context"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
)

type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePreferences(ctx context.Context, id string, prefs domain.AccessibilityPreferences) error
	UpdateConsents(ctx context.Context, id string, consents domain.Consents) error
}

type CourseRepository interface {
	Save(ctx context.Context, course *domain.Course) error
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	FindByUserID(ctx context.Context, userID string) ([]domain.Course, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
}

type AppointmentRepository interface {
	Save(ctx context.Context, apt *domain.Appointment) error
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	FindByUserID(ctx context.Context, userID string) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
}

type NotificationRepository interface {
	Save(ctx context.Context, n *domain.Notification) error
	FindByUserID(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type TicketRepository interface {
	Save(ctx context.Context, ticket *domain.Ticket) error
	FindAll(ctx context.Context) ([]domain.Ticket, error)
	Resolve(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status domain.TicketStatus) (int64, error)
}

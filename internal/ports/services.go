package ports

import (
	"context"
	"time"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, error) // access, refresh, err
	Register(ctx context.Context, user *domain.User) error
	RefreshToken(ctx context.Context, token string) (string, error)
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
}

type CourseService interface {
	ListCourses(ctx context.Context, userID string) ([]domain.Course, error)
	AddCourse(ctx context.Context, userID, name string) (*domain.Course, error)
}

type ScheduleService interface {
	ListAppointments(ctx context.Context, userID string) ([]domain.Appointment, error)
	AddAppointment(ctx context.Context, apt *domain.Appointment) error
	UpdateAppointmentStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
}

type NotificationService interface {
	ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error)
	Notify(ctx context.Context, n *domain.Notification) error
	MarkRead(ctx context.Context, id string) error
}

type AdminService interface {
	Metrics(ctx context.Context) ([]domain.Metric, error)
	ListTickets(ctx context.Context) ([]domain.Ticket, error)
	ResolveTicket(ctx context.Context, id string) error
	GenerateReport(ctx context.Context) ([]byte, error) // CSV payload
}

// Cache abstracts redis (or the in-process fallback).
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}

// EmailProvider sends transactional mail (appointment confirmations).
type EmailProvider interface {
	Send(ctx context.Context, to, subject, body string, isHTML bool) error
}

// SecretSource resolves secrets the service must not keep in config files.
type SecretSource interface {
	JWTSecret() (string, error)
	ClassifierAPIKey() (string, error)
}

package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/ports"
)

type Service struct {
	repo  ports.AppointmentRepository
	users ports.UserRepository
	email ports.EmailProvider
	log   *zap.Logger
}

func NewService(repo ports.AppointmentRepository, users ports.UserRepository, email ports.EmailProvider, log *zap.Logger) ports.ScheduleService {
	return &Service{
		repo:  repo,
		users: users,
		email: email,
		log:   log,
	}
}

func (s *Service) ListAppointments(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *Service) AddAppointment(ctx context.Context, apt *domain.Appointment) error {
	if apt.UserID == "" || apt.Title == "" {
		return fmt.Errorf("appointment requires a user and a title")
	}
	if apt.ID == "" {
		apt.ID = uuid.NewString()
	}
	if apt.Status == "" {
		apt.Status = domain.AppointmentPending
	}
	if apt.Type == "" {
		apt.Type = domain.AppointmentAcademic
	}
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, apt); err != nil {
		return fmt.Errorf("failed to save appointment: %w", err)
	}

	s.log.Info("Appointment created",
		zap.String("appointment_id", apt.ID),
		zap.String("user_id", apt.UserID),
		zap.Time("date", apt.Date),
	)

	// Mail delivery failures must not fail the booking.
	s.sendConfirmation(ctx, apt)
	return nil
}

func (s *Service) UpdateAppointmentStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	s.log.Info("Appointment status updated",
		zap.String("appointment_id", id),
		zap.String("status", string(status)),
	)
	return nil
}

func (s *Service) sendConfirmation(ctx context.Context, apt *domain.Appointment) {
	if s.email == nil || s.users == nil {
		return
	}

	user, err := s.users.FindByID(ctx, apt.UserID)
	if err != nil || user == nil {
		s.log.Warn("Could not load user for confirmation email",
			zap.String("user_id", apt.UserID),
			zap.Error(err),
		)
		return
	}

	subject := fmt.Sprintf("Cita registrada: %s", apt.Title)
	body := fmt.Sprintf(
		"Hola %s,\n\nTu cita \"%s\" quedó registrada para el %s con estado %s.\n\nEquipo StudAI",
		user.Name,
		apt.Title,
		apt.Date.Format("02/01/2006 15:04"),
		apt.Status,
	)

	if err := s.email.Send(ctx, user.Email, subject, body, false); err != nil {
		s.log.Warn("Failed to send confirmation email",
			zap.String("appointment_id", apt.ID),
			zap.Error(err),
		)
	}
}

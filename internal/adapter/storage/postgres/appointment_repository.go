package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/ports"
)

type AppointmentRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAppointmentRepository(db *gorm.DB, log *zap.Logger) ports.AppointmentRepository {
	return &AppointmentRepository{
		db:  db,
		log: log,
	}
}

func (r *AppointmentRepository) Save(ctx context.Context, apt *domain.Appointment) error {
	return r.db.WithContext(ctx).Save(apt).Error
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	var apt domain.Appointment
	err := r.db.WithContext(ctx).First(&apt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &apt, nil
}

func (r *AppointmentRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

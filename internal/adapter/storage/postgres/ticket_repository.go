package postgres

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/ports"
)

type TicketRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewTicketRepository(db *gorm.DB, log *zap.Logger) ports.TicketRepository {
	return &TicketRepository{
		db:  db,
		log: log,
	}
}

func (r *TicketRepository) Save(ctx context.Context, ticket *domain.Ticket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

func (r *TicketRepository) FindAll(ctx context.Context) ([]domain.Ticket, error) {
	var tickets []domain.Ticket
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&tickets).Error
	return tickets, err
}

func (r *TicketRepository) Resolve(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     domain.TicketResolved,
			"updated_at": time.Now(),
		}).Error
}

func (r *TicketRepository) CountByStatus(ctx context.Context, status domain.TicketStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

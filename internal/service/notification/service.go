package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/adapter/queue"
	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/ports"
)

// SubjectCreated carries each stored notification so connected clients
// can be pushed the update in real time.
const SubjectCreated = "notification.created"

type Service struct {
	repo ports.NotificationRepository
	mq   queue.MessageQueue
	log  *zap.Logger
}

func NewService(repo ports.NotificationRepository, mq queue.MessageQueue, log *zap.Logger) ports.NotificationService {
	return &Service{repo: repo, mq: mq, log: log}
}

func (s *Service) ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *Service) Notify(ctx context.Context, n *domain.Notification) error {
	if n.UserID == "" || n.Message == "" {
		return fmt.Errorf("notification requires a user and a message")
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Type == "" {
		n.Type = domain.NotificationInfo
	}
	n.Read = false
	n.CreatedAt = time.Now()

	if err := s.repo.Save(ctx, n); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}

	if s.mq != nil {
		if data, err := json.Marshal(n); err == nil {
			if err := s.mq.Publish(SubjectCreated, data); err != nil {
				s.log.Warn("Failed to publish notification", zap.Error(err))
			}
		}
	}

	s.log.Info("Notification created",
		zap.String("notification_id", n.ID),
		zap.String("user_id", n.UserID),
		zap.String("type", string(n.Type)),
	)
	return nil
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

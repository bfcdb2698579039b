package notification

import (
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/mocks"
)

func TestService_Notify(t *testing.T) {
	var saved *domain.Notification
	repo := &mocks.MockNotificationRepository{
		SaveFunc: func(ctx context.Context, n *domain.Notification) error {
			saved = n
			return nil
		},
	}
	mq := mocks.NewMockMessageQueue()
	service := NewService(repo, mq, zap.NewNop())

	n := &domain.Notification{UserID: "user-1", Title: "Recordatorio", Message: "Tu cita es mañana"}
	if err := service.Notify(context.Background(), n); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	if saved == nil || saved.ID == "" {
		t.Fatal("notification not persisted with an ID")
	}
	if saved.Type != domain.NotificationInfo {
		t.Errorf("type = %s, want info default", saved.Type)
	}
	if saved.Read {
		t.Error("new notification marked as read")
	}

	events := mq.Published[SubjectCreated]
	if len(events) != 1 {
		t.Fatalf("published events = %d, want 1", len(events))
	}
	var published domain.Notification
	if err := json.Unmarshal(events[0], &published); err != nil {
		t.Fatalf("event payload not valid JSON: %v", err)
	}
	if published.ID != saved.ID {
		t.Errorf("published id = %s, want %s", published.ID, saved.ID)
	}
}

func TestService_NotifyValidation(t *testing.T) {
	service := NewService(&mocks.MockNotificationRepository{}, nil, zap.NewNop())

	if err := service.Notify(context.Background(), &domain.Notification{UserID: "user-1"}); err == nil {
		t.Error("expected error for empty message")
	}
}

func TestService_MarkRead(t *testing.T) {
	var gotID string
	repo := &mocks.MockNotificationRepository{
		MarkReadFunc: func(ctx context.Context, id string) error {
			gotID = id
			return nil
		},
	}
	service := NewService(repo, nil, zap.NewNop())

	if err := service.MarkRead(context.Background(), "n-1"); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	if gotID != "n-1" {
		t.Errorf("repo called with %q", gotID)
	}
}

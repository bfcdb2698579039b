package admin

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/mocks"
)

func TestService_Metrics(t *testing.T) {
	repo := &mocks.MockTicketRepository{
		CountByStatusFunc: func(ctx context.Context, status domain.TicketStatus) (int64, error) {
			if status == domain.TicketOpen {
				return 2, nil
			}
			return 6, nil
		},
	}
	service := NewService(repo, zap.NewNop())

	metrics, err := service.Metrics(context.Background())
	if err != nil {
		t.Fatalf("Metrics failed: %v", err)
	}
	if len(metrics) != 3 {
		t.Fatalf("got %d metrics, want 3", len(metrics))
	}
	if metrics[0].Value != "2" {
		t.Errorf("open tickets = %q, want 2", metrics[0].Value)
	}
	if metrics[2].Value != "75.0%" {
		t.Errorf("resolution rate = %q, want 75.0%%", metrics[2].Value)
	}
}

func TestService_GenerateReport(t *testing.T) {
	repo := &mocks.MockTicketRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Ticket, error) {
			return []domain.Ticket{
				{
					ID:        "t-1",
					Subject:   "Lector de pantalla no responde",
					User:      "ana@uni.edu",
					Status:    domain.TicketOpen,
					CreatedAt: time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC),
				},
			}, nil
		},
	}
	service := NewService(repo, zap.NewNop())

	report, err := service.GenerateReport(context.Background())
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}

	out := string(report)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("report has %d lines, want header plus one row:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "ID,Asunto") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Lector de pantalla no responde") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestService_ResolveTicket(t *testing.T) {
	var resolved string
	repo := &mocks.MockTicketRepository{
		ResolveFunc: func(ctx context.Context, id string) error {
			resolved = id
			return nil
		},
	}
	service := NewService(repo, zap.NewNop())

	if err := service.ResolveTicket(context.Background(), "t-9"); err != nil {
		t.Fatalf("ResolveTicket failed: %v", err)
	}
	if resolved != "t-9" {
		t.Errorf("resolved id = %q", resolved)
	}
}

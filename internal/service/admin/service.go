package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/ports"
)

// Service implements AdminService
type Service struct {
	ticketRepo ports.TicketRepository
	log        *zap.Logger
}

func NewService(ticketRepo ports.TicketRepository, log *zap.Logger) ports.AdminService {
	return &Service{ticketRepo: ticketRepo, log: log}
}

// Metrics returns the aggregates shown on the admin dashboard.
func (s *Service) Metrics(ctx context.Context) ([]domain.Metric, error) {
	open, err := s.ticketRepo.CountByStatus(ctx, domain.TicketOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to count open tickets: %w", err)
	}
	resolved, err := s.ticketRepo.CountByStatus(ctx, domain.TicketResolved)
	if err != nil {
		return nil, fmt.Errorf("failed to count resolved tickets: %w", err)
	}

	resolutionRate := 0.0
	if total := open + resolved; total > 0 {
		resolutionRate = float64(resolved) / float64(total) * 100
	}

	return []domain.Metric{
		{Label: "Tickets abiertos", Value: strconv.FormatInt(open, 10)},
		{Label: "Tickets resueltos", Value: strconv.FormatInt(resolved, 10)},
		{Label: "Tasa de resolución", Value: fmt.Sprintf("%.1f%%", resolutionRate), Change: resolutionRate},
	}, nil
}

func (s *Service) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.ticketRepo.FindAll(ctx)
}

func (s *Service) ResolveTicket(ctx context.Context, id string) error {
	if err := s.ticketRepo.Resolve(ctx, id); err != nil {
		return fmt.Errorf("failed to resolve ticket: %w", err)
	}
	s.log.Info("Ticket resolved", zap.String("ticket_id", id))
	return nil
}

// GenerateReport exports every ticket as CSV for offline review.
func (s *Service) GenerateReport(ctx context.Context) ([]byte, error) {
	tickets, err := s.ticketRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"ID", "Asunto", "Usuario", "Estado", "Creado"})
	for _, t := range tickets {
		w.Write([]string{
			t.ID,
			t.Subject,
			t.User,
			string(t.Status),
			t.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}

	return buf.Bytes(), nil
}

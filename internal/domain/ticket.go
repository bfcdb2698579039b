package domain

import "time"

type TicketStatus string

const (
	TicketOpen     TicketStatus = "open"
	TicketResolved TicketStatus = "resolved"
)

type Ticket struct {
	ID        string       `json:"id" gorm:"primaryKey"`
	Subject   string       `json:"subject"`
	User      string       `json:"user"`
	Status    TicketStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Metric is an aggregate shown on the admin dashboard and exported to CSV.
type Metric struct {
	Label  string  `json:"label"`
	Value  string  `json:"value"`
	Change float64 `json:"change"`
}

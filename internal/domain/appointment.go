package domain

import "time"

type AppointmentStatus string

const (
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type AppointmentType string

const (
	AppointmentAcademic       AppointmentType = "academic"
	AppointmentMedical        AppointmentType = "medical"
	AppointmentAdministrative AppointmentType = "administrative"
)

type Appointment struct {
	ID        string            `json:"id" gorm:"primaryKey"`
	UserID    string            `json:"user_id" gorm:"index"`
	Title     string            `json:"title"`
	Date      time.Time         `json:"date"`
	Status    AppointmentStatus `json:"status"`
	Type      AppointmentType   `json:"type"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

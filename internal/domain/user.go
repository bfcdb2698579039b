package domain

import (
	"time"
)

type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleAdmin   UserRole = "admin"
	UserRoleGuest   UserRole = "guest"
)

type User struct {
	ID          string                   `json:"id" gorm:"primaryKey"`
	Name        string                   `json:"name"`
	Email       string                   `json:"email" gorm:"uniqueIndex"`
	Password    string                   `json:"-"` // Hashed password
	Role        UserRole                 `json:"role"`
	Status      string                   `json:"status"` // Active, Inactive, Blocked
	Preferences AccessibilityPreferences `json:"preferences" gorm:"embedded;embeddedPrefix:pref_"`
	Consents    Consents                 `json:"consents" gorm:"embedded;embeddedPrefix:consent_"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

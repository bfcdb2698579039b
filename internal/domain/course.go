package domain

import "time"

type MaterialType string

const (
	MaterialPDF   MaterialType = "pdf"
	MaterialAudio MaterialType = "audio"
	MaterialText  MaterialType = "text"
)

type Material struct {
	ID       string       `json:"id" gorm:"primaryKey"`
	CourseID string       `json:"course_id" gorm:"index"`
	Title    string       `json:"title"`
	Type     MaterialType `json:"type"`
	Content  string       `json:"content,omitempty"`
}

type Course struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	UserID    string     `json:"user_id" gorm:"index"`
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	Professor string     `json:"professor"`
	Schedule  string     `json:"schedule,omitempty"`
	Materials []Material `json:"materials" gorm:"foreignKey:CourseID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

package models

import "time"

type Room struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	TeacherID    uint          `gorm:"not null;index" json:"teacher_id"`
	Teacher      Teacher       `gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE" json:"-"`
	Code         string        `gorm:"size:6;uniqueIndex" json:"code"`
	Title        string        `gorm:"size:255;not null" json:"title"`
	IsActive     bool          `gorm:"not null;default:false" json:"is_active"`
	MaxAttempts  int           `gorm:"not null;default:3" json:"max_attempts"`
	Participants []Participant `gorm:"foreignKey:RoomID" json:"participants,omitempty"`
	Questions    []Question    `gorm:"foreignKey:RoomID" json:"questions,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

package models

import "time"

type Question struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RoomID        uint      `gorm:"not null;index" json:"room_id"`
	Text          string    `gorm:"type:text;not null" json:"text"`
	Type          string    `gorm:"size:20;not null;default:'text'" json:"type"`
	Options       string    `gorm:"type:text" json:"options,omitempty"`
	CorrectAnswer string    `gorm:"size:500;not null" json:"correct_answer"`
	Points        int       `gorm:"not null;default:1" json:"points"`
	ImageURL      string    `gorm:"size:500" json:"image_url,omitempty"`
	OrderNum      int       `gorm:"not null" json:"order_num"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

const (
	QuestionTypeText     = "text"
	QuestionTypeMultiple = "multiple"
)

package models

import "time"

type Participant struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	RoomID   uint      `gorm:"not null;index" json:"room_id"`
	Nickname string    `gorm:"size:100;not null" json:"nickname"`
	Score    int       `gorm:"not null;default:0" json:"score"`
	Token    string    `gorm:"size:36;index" json:"token,omitempty"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`
	JoinedAt time.Time `json:"joined_at"`
}

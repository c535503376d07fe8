package models

import "time"

type Answer struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	QuestionID    uint      `gorm:"not null;uniqueIndex:idx_answer_attempt" json:"question_id"`
	ParticipantID uint      `gorm:"not null;uniqueIndex:idx_answer_attempt" json:"participant_id"`
	AttemptNumber int       `gorm:"not null;uniqueIndex:idx_answer_attempt" json:"attempt_number"`
	Text          string    `gorm:"size:500;not null" json:"text"`
	IsCorrect     bool      `gorm:"not null" json:"is_correct"`
	CreatedAt     time.Time `json:"created_at"`
}

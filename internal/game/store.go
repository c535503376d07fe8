package game

import "context"

// Store is the slice of the persistent store the coordinator needs.
// It is the system of record for durable facts (scores, recorded
// answers, room configuration); live session progression never touches
// it.
type Store interface {
	FindParticipant(ctx context.Context, roomID, participantID uint) (*ParticipantInfo, error)
	FindQuestion(ctx context.Context, questionID uint) (*QuestionInfo, error)
	FindRoomConfig(ctx context.Context, roomID uint) (*RoomConfig, error)
	RecordAnswer(ctx context.Context, rec AnswerRecord) error
	IncrementScore(ctx context.Context, participantID uint, delta int) (int, error)
}

type ParticipantInfo struct {
	ID       uint
	Nickname string
	Score    int
}

type QuestionInfo struct {
	ID            uint
	CorrectAnswer string
	Points        int
}

type RoomConfig struct {
	ID          uint
	TeacherID   uint
	Title       string
	MaxAttempts int
}

type AnswerRecord struct {
	QuestionID    uint
	ParticipantID uint
	Text          string
	IsCorrect     bool
	AttemptNumber int
}

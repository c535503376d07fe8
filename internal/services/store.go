package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gameshow-backend/internal/game"
	"gameshow-backend/internal/models"

	"gorm.io/gorm"
)

// GameStore backs the live-game coordinator with the database. It
// implements game.Store.
type GameStore struct {
	db *gorm.DB
}

func NewGameStore(db *gorm.DB) *GameStore {
	return &GameStore{db: db}
}

func (s *GameStore) FindParticipant(ctx context.Context, roomID, participantID uint) (*game.ParticipantInfo, error) {
	var p models.Participant
	err := s.db.WithContext(ctx).
		Where("id = ? AND room_id = ?", participantID, roomID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, game.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("find participant: %w", err)
	}
	return &game.ParticipantInfo{ID: p.ID, Nickname: p.Nickname, Score: p.Score}, nil
}

func (s *GameStore) FindQuestion(ctx context.Context, questionID uint) (*game.QuestionInfo, error) {
	var q models.Question
	err := s.db.WithContext(ctx).First(&q, questionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, game.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}
	return &game.QuestionInfo{ID: q.ID, CorrectAnswer: q.CorrectAnswer, Points: q.Points}, nil
}

func (s *GameStore) FindRoomConfig(ctx context.Context, roomID uint) (*game.RoomConfig, error) {
	var room models.Room
	err := s.db.WithContext(ctx).First(&room, roomID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, game.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	return &game.RoomConfig{
		ID:          room.ID,
		TeacherID:   room.TeacherID,
		Title:       room.Title,
		MaxAttempts: room.MaxAttempts,
	}, nil
}

// RecordAnswer persists one graded attempt. The unique index on
// (question, participant, attempt) turns a redelivered submission into
// game.ErrDuplicateAnswer instead of a second row.
func (s *GameStore) RecordAnswer(ctx context.Context, rec game.AnswerRecord) error {
	answer := models.Answer{
		QuestionID:    rec.QuestionID,
		ParticipantID: rec.ParticipantID,
		AttemptNumber: rec.AttemptNumber,
		Text:          rec.Text,
		IsCorrect:     rec.IsCorrect,
		CreatedAt:     time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&answer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return game.ErrDuplicateAnswer
		}
		return fmt.Errorf("record answer: %w", err)
	}
	return nil
}

func (s *GameStore) IncrementScore(ctx context.Context, participantID uint, delta int) (int, error) {
	res := s.db.WithContext(ctx).Model(&models.Participant{}).
		Where("id = ?", participantID).
		UpdateColumn("score", gorm.Expr("score + ?", delta))
	if res.Error != nil {
		return 0, fmt.Errorf("increment score: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, game.ErrParticipantNotFound
	}

	var p models.Participant
	if err := s.db.WithContext(ctx).First(&p, participantID).Error; err != nil {
		return 0, fmt.Errorf("reload participant: %w", err)
	}
	return p.Score, nil
}

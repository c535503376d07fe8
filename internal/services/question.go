package services

import (
	"errors"

	"gameshow-backend/internal/models"

	"gorm.io/gorm"
)

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

type QuestionInput struct {
	Text          string
	Type          string
	Options       string
	CorrectAnswer string
	Points        int
	ImageURL      string
}

// CreateQuestion appends a question to the room, taking the next slot
// in the display order.
func (s *QuestionService) CreateQuestion(roomID, teacherID uint, in QuestionInput) (*models.Question, error) {
	if _, err := s.roomOwnedBy(roomID, teacherID); err != nil {
		return nil, err
	}
	if in.Type == "" {
		in.Type = models.QuestionTypeText
	}
	if in.Points < 1 {
		in.Points = 1
	}

	var last models.Question
	orderNum := 1
	if err := s.db.Where("room_id = ?", roomID).
		Order("order_num DESC").First(&last).Error; err == nil {
		orderNum = last.OrderNum + 1
	}

	question := models.Question{
		RoomID:        roomID,
		Text:          in.Text,
		Type:          in.Type,
		Options:       in.Options,
		CorrectAnswer: in.CorrectAnswer,
		Points:        in.Points,
		ImageURL:      in.ImageURL,
		OrderNum:      orderNum,
		IsActive:      true,
	}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuestionService) ListQuestions(roomID uint) ([]models.Question, error) {
	var questions []models.Question
	if err := s.db.Where("room_id = ?", roomID).
		Order("order_num ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *QuestionService) UpdateQuestion(questionID, teacherID uint, in QuestionInput) (*models.Question, error) {
	question, err := s.questionOwnedBy(questionID, teacherID)
	if err != nil {
		return nil, err
	}

	if in.Text != "" {
		question.Text = in.Text
	}
	if in.Type != "" {
		question.Type = in.Type
	}
	if in.CorrectAnswer != "" {
		question.CorrectAnswer = in.CorrectAnswer
	}
	if in.Points > 0 {
		question.Points = in.Points
	}
	question.Options = in.Options
	question.ImageURL = in.ImageURL

	if err := s.db.Save(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) DeleteQuestion(questionID, teacherID uint) error {
	question, err := s.questionOwnedBy(questionID, teacherID)
	if err != nil {
		return err
	}
	return s.db.Delete(question).Error
}

func (s *QuestionService) roomOwnedBy(roomID, teacherID uint) (*models.Room, error) {
	var room models.Room
	if err := s.db.Where("id = ? AND teacher_id = ?", roomID, teacherID).First(&room).Error; err != nil {
		return nil, errors.New("room not found")
	}
	return &room, nil
}

func (s *QuestionService) questionOwnedBy(questionID, teacherID uint) (*models.Question, error) {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return nil, errors.New("question not found")
	}
	if _, err := s.roomOwnedBy(question.RoomID, teacherID); err != nil {
		return nil, errors.New("question not found")
	}
	return &question, nil
}

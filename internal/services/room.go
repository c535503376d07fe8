package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"gameshow-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	roomCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	roomCodeLength = 6
)

type RoomService struct {
	db *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{db: db}
}

type RoomJoinResult struct {
	Room        models.Room        `json:"room"`
	Participant models.Participant `json:"participant"`
	IsRejoin    bool               `json:"is_rejoin"`
}

func (s *RoomService) CreateRoom(teacherID uint, title string, maxAttempts int) (*models.Room, error) {
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	room := models.Room{
		TeacherID:   teacherID,
		Code:        s.generateUniqueCode(),
		Title:       title,
		IsActive:    false,
		MaxAttempts: maxAttempts,
	}
	if err := s.db.Create(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) ListRooms(teacherID uint) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.db.Where("teacher_id = ?", teacherID).
		Preload("Participants").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Order("created_at DESC").
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *RoomService) GetRoom(roomID uint) (*models.Room, error) {
	var room models.Room
	if err := s.db.Preload("Participants").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&room, roomID).Error; err != nil {
		return nil, errors.New("room not found")
	}
	return &room, nil
}

func (s *RoomService) GetRoomByCode(code string) (*models.Room, error) {
	var room models.Room
	if err := s.db.Where("code = ?", strings.ToUpper(code)).
		Preload("Participants").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&room).Error; err != nil {
		return nil, errors.New("room not found")
	}
	return &room, nil
}

func (s *RoomService) UpdateRoom(roomID, teacherID uint, title string, maxAttempts int) (*models.Room, error) {
	var room models.Room
	if err := s.db.Where("id = ? AND teacher_id = ?", roomID, teacherID).First(&room).Error; err != nil {
		return nil, errors.New("room not found")
	}
	if title != "" {
		room.Title = title
	}
	if maxAttempts > 0 {
		room.MaxAttempts = maxAttempts
	}
	if err := s.db.Save(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) DeleteRoom(roomID, teacherID uint) error {
	res := s.db.Where("id = ? AND teacher_id = ?", roomID, teacherID).Delete(&models.Room{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("room not found")
	}
	return nil
}

// SetActive flips the room's live flag when the teacher starts or ends
// the game.
func (s *RoomService) SetActive(roomID, teacherID uint, active bool) error {
	res := s.db.Model(&models.Room{}).
		Where("id = ? AND teacher_id = ?", roomID, teacherID).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("room not found")
	}
	return nil
}

// JoinRoom creates a participant in the room. A returning participant
// presenting their token gets their existing record back instead of a
// duplicate; fresh joins must pick a nickname unused in the room.
func (s *RoomService) JoinRoom(roomID uint, nickname, token string) (*RoomJoinResult, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, errors.New("nickname is required")
	}

	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		return nil, errors.New("room not found")
	}

	if token != "" {
		var existing models.Participant
		if err := s.db.Where("room_id = ? AND token = ?", roomID, token).
			First(&existing).Error; err == nil {
			return &RoomJoinResult{Room: room, Participant: existing, IsRejoin: true}, nil
		}
	}

	var taken models.Participant
	if err := s.db.Where("room_id = ? AND nickname = ?", roomID, nickname).
		First(&taken).Error; err == nil {
		return nil, errors.New("nickname already taken in this room")
	}

	participant := models.Participant{
		RoomID:   roomID,
		Nickname: nickname,
		Score:    0,
		Token:    uuid.NewString(),
		IsActive: true,
		JoinedAt: time.Now(),
	}
	if err := s.db.Create(&participant).Error; err != nil {
		return nil, fmt.Errorf("failed to join room: %w", err)
	}

	return &RoomJoinResult{Room: room, Participant: participant}, nil
}

func (s *RoomService) generateUniqueCode() string {
	for {
		code := roomCode(roomCodeLength)
		var count int64
		s.db.Model(&models.Room{}).Where("code = ?", code).Count(&count)
		if count == 0 {
			return code
		}
	}
}

func roomCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = roomCodeChars[rand.Intn(len(roomCodeChars))]
	}
	return string(b)
}

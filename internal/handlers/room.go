package handlers

import (
	"net/http"
	"strconv"

	"gameshow-backend/internal/game"
	"gameshow-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomService *services.RoomService
	registry    *game.Registry
}

func NewRoomHandler(roomService *services.RoomService, registry *game.Registry) *RoomHandler {
	return &RoomHandler{roomService: roomService, registry: registry}
}

type CreateRoomRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	MaxAttempts int    `json:"max_attempts"`
}

type UpdateRoomRequest struct {
	Title       string `json:"title"`
	MaxAttempts int    `json:"max_attempts"`
}

type JoinRoomRequest struct {
	Nickname string `json:"nickname" binding:"required,min=1,max=100"`
	Token    string `json:"token"`
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	teacherID := c.GetUint("teacher_id")
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	room, err := h.roomService.CreateRoom(teacherID, req.Title, req.MaxAttempts)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	teacherID := c.GetUint("teacher_id")
	rooms, err := h.roomService.ListRooms(teacherID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}
	room, err := h.roomService.GetRoom(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	teacherID := c.GetUint("teacher_id")
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	room, err := h.roomService.UpdateRoom(roomID, teacherID, req.Title, req.MaxAttempts)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	teacherID := c.GetUint("teacher_id")
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.roomService.DeleteRoom(roomID, teacherID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "room deleted"})
}

func (h *RoomHandler) StartGame(c *gin.Context) {
	teacherID := c.GetUint("teacher_id")
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.roomService.SetActive(roomID, teacherID, true); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "game started"})
}

func (h *RoomHandler) EndGame(c *gin.Context) {
	teacherID := c.GetUint("teacher_id")
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.roomService.SetActive(roomID, teacherID, false); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	// Ending the game retires the live session and its pending timers.
	h.registry.Remove(roomID)
	c.JSON(http.StatusOK, MessageResponse{Message: "game ended"})
}

func (h *RoomHandler) Join(c *gin.Context) {
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.roomService.JoinRoom(roomID, req.Nickname, req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *RoomHandler) ValidateCode(c *gin.Context) {
	room, err := h.roomService.GetRoomByCode(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, room)
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

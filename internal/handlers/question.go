package handlers

import (
	"net/http"

	"gameshow-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

type QuestionRequest struct {
	Text          string `json:"text" binding:"required"`
	Type          string `json:"type"`
	Options       string `json:"options"`
	CorrectAnswer string `json:"correct_answer" binding:"required"`
	Points        int    `json:"points"`
	ImageURL      string `json:"image_url"`
}

type UpdateQuestionRequest struct {
	Text          string `json:"text"`
	Type          string `json:"type"`
	Options       string `json:"options"`
	CorrectAnswer string `json:"correct_answer"`
	Points        int    `json:"points"`
	ImageURL      string `json:"image_url"`
}

func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	teacherID := c.GetUint("teacher_id")
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questionService.CreateQuestion(roomID, teacherID, services.QuestionInput{
		Text:          req.Text,
		Type:          req.Type,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Points:        req.Points,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, question)
}

func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}
	questions, err := h.questionService.ListQuestions(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	teacherID := c.GetUint("teacher_id")
	questionID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questionService.UpdateQuestion(questionID, teacherID, services.QuestionInput{
		Text:          req.Text,
		Type:          req.Type,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Points:        req.Points,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	teacherID := c.GetUint("teacher_id")
	questionID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.questionService.DeleteQuestion(questionID, teacherID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "question deleted"})
}

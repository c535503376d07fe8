package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"gameshow-backend/internal/game"
	"gameshow-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler is the connection gateway: it upgrades clients, validates
// and binds their identity on join, and routes inbound game events
// into the coordinator.
type WSHandler struct {
	hub         *ws.Hub
	coordinator *game.Coordinator
	registry    *game.Registry
	store       game.Store
}

func NewWSHandler(hub *ws.Hub, coordinator *game.Coordinator, registry *game.Registry, store game.Store) *WSHandler {
	return &WSHandler{hub: hub, coordinator: coordinator, registry: registry, store: store}
}

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type joinRoomPayload struct {
	RoomID        uint   `json:"roomId"`
	ParticipantID uint   `json:"participantId"`
	Nickname      string `json:"nickname"`
	Role          string `json:"role"`
	TeacherID     uint   `json:"teacherId"`
}

type submitAnswerPayload struct {
	Answer     string `json:"answer"`
	QuestionID uint   `json:"questionId"`
}

type monitoringPayload struct {
	ParticipantID uint `json:"participantId"`
	TeacherID     uint `json:"teacherId"`
	Granted       bool `json:"granted"`
}

type connectedPayload struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	client := ws.NewClient(conn)
	defer h.cleanup(client)

	client.Send(ws.Message{Type: game.EventConnected, Data: connectedPayload{
		Message:   "Connected to Gameshow Server!",
		Timestamp: time.Now().Format(time.RFC3339),
	}})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			h.sendError(client, "malformed message")
			continue
		}
		h.dispatch(c.Request.Context(), client, env)
	}
}

// cleanup runs when the connection drops. The session keeps the
// departed participant in the buzz order and holds their turn; only
// the connection count and broadcast group are updated.
func (h *WSHandler) cleanup(client *ws.Client) {
	if !client.Bound() {
		client.Close()
		return
	}

	roomID := client.RoomID()
	if sess, ok := h.registry.Get(roomID); ok {
		sess.Unbind()
	}
	h.hub.Leave(client)

	if !client.IsTeacher() {
		h.hub.Broadcast(roomID, ws.Message{Type: game.EventParticipantLeft, Data: game.ParticipantLeft{
			ParticipantID: client.ParticipantID(),
			Nickname:      client.Nickname(),
		}})
	}
	log.Printf("ws: %s disconnected from room %d", client.Nickname(), roomID)
}

func (h *WSHandler) dispatch(ctx context.Context, client *ws.Client, env envelope) {
	switch env.Type {
	case game.EventJoinRoom:
		h.handleJoin(ctx, client, env.Data)
	case game.EventBuzz:
		h.handleBuzz(client)
	case game.EventSubmitAnswer:
		h.handleSubmitAnswer(ctx, client, env.Data)
	case game.EventStartQuestion:
		h.handleStartQuestion(client)
	case game.EventScreenMonitoringRequest:
		h.handleMonitoringRequest(client, env.Data)
	case game.EventScreenMonitoringResponse:
		h.handleMonitoringResponse(client, env.Data)
	case game.EventScreenMonitoringStop:
		h.handleMonitoringStop(client, env.Data)
	default:
		h.sendError(client, "unknown event type")
	}
}

func (h *WSHandler) handleJoin(ctx context.Context, client *ws.Client, data json.RawMessage) {
	if client.Bound() {
		h.sendError(client, "already joined a room")
		return
	}

	var req joinRoomPayload
	if err := json.Unmarshal(data, &req); err != nil || req.RoomID == 0 {
		h.sendError(client, "invalid join request")
		return
	}

	var joined *game.ParticipantJoined
	if req.Role == "teacher" {
		room, err := h.store.FindRoomConfig(ctx, req.RoomID)
		if err != nil || room.TeacherID != req.TeacherID {
			h.sendError(client, "invalid teacher or room")
			return
		}
		nickname := req.Nickname
		if nickname == "" {
			nickname = "Teacher"
		}
		client.BindTeacher(req.RoomID, req.TeacherID, nickname)
	} else {
		participant, err := h.store.FindParticipant(ctx, req.RoomID, req.ParticipantID)
		if err != nil {
			h.sendError(client, "invalid participant or room")
			return
		}
		nickname := req.Nickname
		if nickname == "" {
			nickname = participant.Nickname
		}
		client.BindParticipant(req.RoomID, req.ParticipantID, nickname)
		joined = &game.ParticipantJoined{
			ParticipantID: req.ParticipantID,
			Nickname:      nickname,
			Score:         participant.Score,
		}
	}

	h.hub.Join(client)
	sess := h.registry.GetOrCreate(req.RoomID)
	sess.Bind()

	if joined != nil {
		h.hub.Broadcast(req.RoomID, ws.Message{Type: game.EventParticipantJoined, Data: *joined})
	}
	client.Send(ws.Message{Type: game.EventGameState, Data: sess.Snapshot()})
	log.Printf("ws: %s joined room %d", client.Nickname(), req.RoomID)
}

func (h *WSHandler) handleBuzz(client *ws.Client) {
	if !client.Bound() || client.IsTeacher() {
		h.sendError(client, "not in a room")
		return
	}
	if err := h.coordinator.Buzz(client.RoomID(), client.ParticipantID(), client.Nickname()); err != nil {
		h.sendError(client, err.Error())
	}
}

func (h *WSHandler) handleSubmitAnswer(ctx context.Context, client *ws.Client, data json.RawMessage) {
	if !client.Bound() || client.IsTeacher() {
		h.sendError(client, "not in a room")
		return
	}
	var req submitAnswerPayload
	if err := json.Unmarshal(data, &req); err != nil || req.QuestionID == 0 {
		h.sendError(client, "invalid answer submission")
		return
	}

	err := h.coordinator.SubmitAnswer(ctx, client.RoomID(), client.ParticipantID(), client.Nickname(), req.QuestionID, req.Answer)
	switch {
	case err == nil:
	case errors.Is(err, game.ErrNotYourTurn):
		h.sendError(client, "Not your turn to answer")
	case errors.Is(err, game.ErrQuestionNotFound):
		h.sendError(client, "Question not found")
	default:
		h.sendError(client, err.Error())
	}
}

func (h *WSHandler) handleStartQuestion(client *ws.Client) {
	if !client.Bound() {
		h.sendError(client, "not in a room")
		return
	}
	if !client.IsTeacher() {
		h.sendError(client, "only the teacher can start a question")
		return
	}
	h.coordinator.StartQuestion(client.RoomID())
}

func (h *WSHandler) handleMonitoringRequest(client *ws.Client, data json.RawMessage) {
	if !client.Bound() {
		h.sendError(client, "not in a room")
		return
	}
	var req monitoringPayload
	if err := json.Unmarshal(data, &req); err != nil {
		h.sendError(client, "invalid monitoring request")
		return
	}
	h.hub.SendToParticipant(req.ParticipantID, ws.Message{
		Type: game.EventScreenMonitoringForward,
		Data: game.ScreenMonitoringRequest{
			ParticipantID: req.ParticipantID,
			TeacherID:     req.TeacherID,
			RoomID:        client.RoomID(),
		},
	})
}

func (h *WSHandler) handleMonitoringResponse(client *ws.Client, data json.RawMessage) {
	if !client.Bound() {
		h.sendError(client, "not in a room")
		return
	}
	var req monitoringPayload
	if err := json.Unmarshal(data, &req); err != nil {
		h.sendError(client, "invalid monitoring response")
		return
	}
	h.hub.SendToTeacher(req.TeacherID, ws.Message{
		Type: game.EventScreenMonitoringResponse,
		Data: game.ScreenMonitoringResponse{
			ParticipantID: req.ParticipantID,
			Granted:       req.Granted,
		},
	})
}

func (h *WSHandler) handleMonitoringStop(client *ws.Client, data json.RawMessage) {
	if !client.Bound() {
		h.sendError(client, "not in a room")
		return
	}
	var req monitoringPayload
	if err := json.Unmarshal(data, &req); err != nil {
		h.sendError(client, "invalid monitoring request")
		return
	}
	h.hub.SendToParticipant(req.ParticipantID, ws.Message{
		Type: game.EventScreenMonitoringStopped,
		Data: game.ScreenMonitoringStopped{
			ParticipantID: req.ParticipantID,
			TeacherID:     req.TeacherID,
		},
	})
	h.hub.SendToTeacher(req.TeacherID, ws.Message{
		Type: game.EventScreenMonitoringStopped,
		Data: game.ScreenMonitoringStopped{
			ParticipantID: req.ParticipantID,
		},
	})
}

func (h *WSHandler) sendError(client *ws.Client, message string) {
	client.Send(ws.Message{Type: game.EventError, Data: game.ErrorMessage{Message: message}})
}

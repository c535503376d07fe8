package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"gameshow-backend/internal/game"
	"gameshow-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Stub store backing the gateway tests: room 1 is owned by teacher 9,
// holds participant 1 ("alice") and question 101 worth 2 points.
type stubStore struct {
	mu     sync.Mutex
	scores map[uint]int
}

func newStubStore() *stubStore {
	return &stubStore{scores: make(map[uint]int)}
}

func (s *stubStore) FindParticipant(ctx context.Context, roomID, participantID uint) (*game.ParticipantInfo, error) {
	if roomID != 1 || participantID != 1 {
		return nil, game.ErrParticipantNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return &game.ParticipantInfo{ID: 1, Nickname: "alice", Score: s.scores[1]}, nil
}

func (s *stubStore) FindQuestion(ctx context.Context, questionID uint) (*game.QuestionInfo, error) {
	if questionID != 101 {
		return nil, game.ErrQuestionNotFound
	}
	return &game.QuestionInfo{ID: 101, CorrectAnswer: "Paris", Points: 2}, nil
}

func (s *stubStore) FindRoomConfig(ctx context.Context, roomID uint) (*game.RoomConfig, error) {
	if roomID != 1 {
		return nil, game.ErrRoomNotFound
	}
	return &game.RoomConfig{ID: 1, TeacherID: 9, Title: "Geography", MaxAttempts: 3}, nil
}

func (s *stubStore) RecordAnswer(ctx context.Context, rec game.AnswerRecord) error {
	return nil
}

func (s *stubStore) IncrementScore(ctx context.Context, participantID uint, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[participantID] += delta
	return s.scores[participantID], nil
}

func newGatewayServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := ws.NewHub()
	registry := game.NewRegistry(time.Minute)
	t.Cleanup(registry.Close)

	store := newStubStore()
	coordinator := game.NewCoordinator(registry, store, hub, 25*time.Millisecond)
	handler := NewWSHandler(hub, coordinator, registry, store)

	r := gin.New()
	r.GET("/ws", handler.HandleWebSocket)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

type wsEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func readEvent(t *testing.T, conn *websocket.Conn) wsEvent {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var e wsEvent
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	return e
}

func expectEvent(t *testing.T, conn *websocket.Conn, want string) json.RawMessage {
	t.Helper()
	e := readEvent(t, conn)
	if e.Type != want {
		t.Fatalf("got event %q (%s), want %q", e.Type, e.Data, want)
	}
	return e.Data
}

func send(t *testing.T, conn *websocket.Conn, eventType string, data any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": eventType, "data": data}); err != nil {
		t.Fatalf("write %s: %v", eventType, err)
	}
}

// dial connects and consumes the welcome message.
func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	expectEvent(t, conn, game.EventConnected)
	return conn
}

func TestGatewayRejectsEventsBeforeJoin(t *testing.T) {
	url := newGatewayServer(t)
	conn := dial(t, url)

	send(t, conn, game.EventBuzz, map[string]any{})
	data := expectEvent(t, conn, game.EventError)

	var msg game.ErrorMessage
	json.Unmarshal(data, &msg)
	if msg.Message != "not in a room" {
		t.Errorf("error message = %q", msg.Message)
	}

	send(t, conn, "no-such-event", map[string]any{})
	expectEvent(t, conn, game.EventError)
}

func TestGatewayRejectsUnknownParticipant(t *testing.T) {
	url := newGatewayServer(t)
	conn := dial(t, url)

	send(t, conn, game.EventJoinRoom, map[string]any{"roomId": 1, "participantId": 99})
	data := expectEvent(t, conn, game.EventError)

	var msg game.ErrorMessage
	json.Unmarshal(data, &msg)
	if msg.Message != "invalid participant or room" {
		t.Errorf("error message = %q", msg.Message)
	}
}

func TestGatewayRejectsWrongTeacher(t *testing.T) {
	url := newGatewayServer(t)
	conn := dial(t, url)

	send(t, conn, game.EventJoinRoom, map[string]any{"roomId": 1, "role": "teacher", "teacherId": 4})
	data := expectEvent(t, conn, game.EventError)

	var msg game.ErrorMessage
	json.Unmarshal(data, &msg)
	if msg.Message != "invalid teacher or room" {
		t.Errorf("error message = %q", msg.Message)
	}
}

func TestGatewayStartQuestionIsTeacherOnly(t *testing.T) {
	url := newGatewayServer(t)
	student := dial(t, url)

	send(t, student, game.EventJoinRoom, map[string]any{"roomId": 1, "participantId": 1, "nickname": "alice"})
	expectEvent(t, student, game.EventParticipantJoined)
	expectEvent(t, student, game.EventGameState)

	send(t, student, game.EventStartQuestion, map[string]any{})
	data := expectEvent(t, student, game.EventError)

	var msg game.ErrorMessage
	json.Unmarshal(data, &msg)
	if msg.Message != "only the teacher can start a question" {
		t.Errorf("error message = %q", msg.Message)
	}
}

func TestGatewayGameFlow(t *testing.T) {
	url := newGatewayServer(t)

	student := dial(t, url)
	send(t, student, game.EventJoinRoom, map[string]any{"roomId": 1, "participantId": 1, "nickname": "alice"})

	joined := expectEvent(t, student, game.EventParticipantJoined)
	var pj game.ParticipantJoined
	json.Unmarshal(joined, &pj)
	if pj.ParticipantID != 1 || pj.Nickname != "alice" {
		t.Fatalf("participant-joined = %+v", pj)
	}

	stateData := expectEvent(t, student, game.EventGameState)
	var state game.State
	json.Unmarshal(stateData, &state)
	if state.RoomID != 1 || state.Status != game.StatusWaiting {
		t.Fatalf("game-state = %+v", state)
	}

	teacher := dial(t, url)
	send(t, teacher, game.EventJoinRoom, map[string]any{"roomId": 1, "role": "teacher", "teacherId": 9})
	expectEvent(t, teacher, game.EventGameState)

	// Teacher opens the question; everyone sees it.
	send(t, teacher, game.EventStartQuestion, map[string]any{})
	expectEvent(t, student, game.EventQuestionStarted)
	expectEvent(t, teacher, game.EventQuestionStarted)

	// Student buzzes and takes the turn.
	send(t, student, game.EventBuzz, map[string]any{})
	buzzData := expectEvent(t, student, game.EventBuzzReceived)
	var buzz game.BuzzReceived
	json.Unmarshal(buzzData, &buzz)
	if buzz.ParticipantID != 1 || !buzz.IsCurrentAnswerer {
		t.Fatalf("buzz-received = %+v", buzz)
	}
	expectEvent(t, teacher, game.EventBuzzReceived)

	// Correct answer scores and schedules the advance.
	send(t, student, game.EventSubmitAnswer, map[string]any{"answer": "paris", "questionId": 101})
	resultData := expectEvent(t, student, game.EventAnswerResult)
	var result game.AnswerResult
	json.Unmarshal(resultData, &result)
	if !result.IsCorrect || result.NewScore != 2 || result.Points != 2 {
		t.Fatalf("answer-result = %+v", result)
	}
	expectEvent(t, teacher, game.EventAnswerResult)

	nextData := expectEvent(t, student, game.EventNextQuestion)
	var next game.NextQuestion
	json.Unmarshal(nextData, &next)
	if next.QuestionIndex != 1 {
		t.Fatalf("next-question index = %d, want 1", next.QuestionIndex)
	}
	expectEvent(t, teacher, game.EventNextQuestion)

	// Screen monitoring relays between the two sockets.
	send(t, teacher, game.EventScreenMonitoringRequest, map[string]any{"participantId": 1, "teacherId": 9})
	expectEvent(t, student, game.EventScreenMonitoringForward)

	send(t, student, game.EventScreenMonitoringResponse, map[string]any{"participantId": 1, "teacherId": 9, "granted": true})
	respData := expectEvent(t, teacher, game.EventScreenMonitoringResponse)
	var resp game.ScreenMonitoringResponse
	json.Unmarshal(respData, &resp)
	if resp.ParticipantID != 1 || !resp.Granted {
		t.Fatalf("screen-monitoring-response = %+v", resp)
	}

	send(t, teacher, game.EventScreenMonitoringStop, map[string]any{"participantId": 1, "teacherId": 9})
	expectEvent(t, student, game.EventScreenMonitoringStopped)
	expectEvent(t, teacher, game.EventScreenMonitoringStopped)

	// Dropping the student notifies the room.
	student.Close()
	leftData := expectEvent(t, teacher, game.EventParticipantLeft)
	var left game.ParticipantLeft
	json.Unmarshal(leftData, &left)
	if left.ParticipantID != 1 || left.Nickname != "alice" {
		t.Fatalf("participant-left = %+v", left)
	}
}

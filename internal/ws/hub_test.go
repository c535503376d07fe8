package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// connPair upgrades one websocket and hands back both ends.
func connPair(t *testing.T) (*Client, *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	clientConn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { clientConn.Close() })

	return NewClient(<-serverConns), clientConn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	return msg
}

// expectNoMessage asserts silence. The read deadline poisons the
// connection in gorilla, so only call this once a conn is done being
// read.
func expectNoMessage(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(50 * time.Millisecond))
	if _, data, err := conn.ReadMessage(); err == nil {
		t.Fatalf("unexpected message %q", data)
	}
}

func TestHubBroadcastAndTargetedSend(t *testing.T) {
	hub := NewHub()

	studentServer, studentClient := connPair(t)
	studentServer.BindParticipant(5, 1, "alice")
	hub.Join(studentServer)

	teacherServer, teacherClient := connPair(t)
	teacherServer.BindTeacher(5, 9, "Teacher")
	hub.Join(teacherServer)

	outsiderServer, outsiderClient := connPair(t)
	outsiderServer.BindParticipant(6, 2, "bob")
	hub.Join(outsiderServer)

	if got := hub.RoomSize(5); got != 2 {
		t.Fatalf("RoomSize(5) = %d, want 2", got)
	}

	hub.Broadcast(5, Message{Type: "ping", Data: "hello"})
	if msg := readMessage(t, studentClient); msg.Type != "ping" {
		t.Errorf("student got %q", msg.Type)
	}
	if msg := readMessage(t, teacherClient); msg.Type != "ping" {
		t.Errorf("teacher got %q", msg.Type)
	}

	if !hub.SendToParticipant(1, Message{Type: "to-student"}) {
		t.Fatal("SendToParticipant(1) = false")
	}
	if msg := readMessage(t, studentClient); msg.Type != "to-student" {
		t.Errorf("student got %q", msg.Type)
	}

	if !hub.SendToTeacher(9, Message{Type: "to-teacher"}) {
		t.Fatal("SendToTeacher(9) = false")
	}
	if msg := readMessage(t, teacherClient); msg.Type != "to-teacher" {
		t.Errorf("teacher got %q", msg.Type)
	}

	// The room-5 traffic never reached room 6.
	expectNoMessage(t, outsiderClient)

	hub.Leave(studentServer)
	if got := hub.RoomSize(5); got != 1 {
		t.Errorf("RoomSize(5) after leave = %d, want 1", got)
	}
	if hub.SendToParticipant(1, Message{Type: "direct"}) {
		t.Error("SendToParticipant delivered to a departed client")
	}
}

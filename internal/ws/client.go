package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

// Client wraps one websocket connection together with the identity it
// was bound to at join time. The binding is set once and never
// changes for the life of the connection.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	roomID        uint
	participantID uint
	teacherID     uint
	nickname      string
	bound         bool
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

// BindParticipant attaches a student identity to the connection.
func (c *Client) BindParticipant(roomID, participantID uint, nickname string) {
	c.roomID = roomID
	c.participantID = participantID
	c.nickname = nickname
	c.bound = true
}

// BindTeacher attaches a teacher identity to the connection.
func (c *Client) BindTeacher(roomID, teacherID uint, nickname string) {
	c.roomID = roomID
	c.teacherID = teacherID
	c.nickname = nickname
	c.bound = true
}

func (c *Client) Bound() bool         { return c.bound }
func (c *Client) IsTeacher() bool     { return c.bound && c.teacherID != 0 }
func (c *Client) RoomID() uint        { return c.roomID }
func (c *Client) ParticipantID() uint { return c.participantID }
func (c *Client) TeacherID() uint     { return c.teacherID }
func (c *Client) Nickname() string    { return c.nickname }

// Send marshals and writes one message. Writes are serialized per
// connection since both the hub and the read loop may emit to the
// same client.
func (c *Client) Send(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *Client) Close() {
	c.conn.Close()
}

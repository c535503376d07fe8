package ws

import (
	"log"
	"sync"
)

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub tracks which connections are bound to which room and indexes
// them by identity for targeted delivery. Teachers and participants
// live in separate namespaces since their ids come from different
// tables.
type Hub struct {
	mu           sync.RWMutex
	rooms        map[uint]map[*Client]bool
	participants map[uint]*Client
	teachers     map[uint]*Client
}

func NewHub() *Hub {
	return &Hub{
		rooms:        make(map[uint]map[*Client]bool),
		participants: make(map[uint]*Client),
		teachers:     make(map[uint]*Client),
	}
}

// Join registers a bound client with its room group and identity index.
func (h *Hub) Join(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	roomID := c.RoomID()
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][c] = true

	if c.IsTeacher() {
		h.teachers[c.TeacherID()] = c
	} else {
		h.participants[c.ParticipantID()] = c
	}
	log.Printf("ws: client joined room %d (total: %d)", roomID, len(h.rooms[roomID]))
}

// Leave removes the client from all indexes and closes the connection.
// Safe to call for clients that never joined.
func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	roomID := c.RoomID()
	if conns, ok := h.rooms[roomID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.rooms, roomID)
		}
	}
	if c.IsTeacher() {
		if h.teachers[c.TeacherID()] == c {
			delete(h.teachers, c.TeacherID())
		}
	} else if h.participants[c.ParticipantID()] == c {
		delete(h.participants, c.ParticipantID())
	}
	c.Close()
}

// Broadcast delivers a message to every connection in the room.
// Connections that fail the write are dropped from the hub.
func (h *Hub) Broadcast(roomID uint, msg Message) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[roomID]))
	for c := range h.rooms[roomID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.Send(msg); err != nil {
			log.Printf("ws: write error in room %d: %v", roomID, err)
			h.Leave(c)
		}
	}
}

// ToRoom adapts Broadcast to the coordinator's event/payload shape.
func (h *Hub) ToRoom(roomID uint, event string, data any) {
	h.Broadcast(roomID, Message{Type: event, Data: data})
}

// SendToParticipant delivers a message to one participant's
// connection, if currently bound.
func (h *Hub) SendToParticipant(participantID uint, msg Message) bool {
	h.mu.RLock()
	c, ok := h.participants[participantID]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	if err := c.Send(msg); err != nil {
		log.Printf("ws: write error to participant %d: %v", participantID, err)
		h.Leave(c)
		return false
	}
	return true
}

// SendToTeacher delivers a message to one teacher's connection, if
// currently bound.
func (h *Hub) SendToTeacher(teacherID uint, msg Message) bool {
	h.mu.RLock()
	c, ok := h.teachers[teacherID]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	if err := c.Send(msg); err != nil {
		log.Printf("ws: write error to teacher %d: %v", teacherID, err)
		h.Leave(c)
		return false
	}
	return true
}

// RoomSize reports how many connections are bound to a room.
func (h *Hub) RoomSize(roomID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

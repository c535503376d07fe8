package game

import (
	"slices"
	"sync"
	"time"
)

// Session is the in-memory live-game state for one room. All fields
// are guarded by mu; the coordinator holds mu across an entire
// operation, store round trips included, so turn and score mutations
// are check-then-act atomic per room.
type Session struct {
	mu     sync.Mutex
	roomID uint

	currentQuestionIndex int
	buzzOrder            []uint
	currentAnswerer      uint // 0 = nobody holds the turn
	attempts             int
	status               Status

	advanceTimer *time.Timer
	advanceGen   uint64

	bound      int // connections currently bound to this room
	lastActive time.Time
	evicted    bool
}

func newSession(roomID uint) *Session {
	return &Session{
		roomID:     roomID,
		buzzOrder:  []uint{},
		status:     StatusWaiting,
		lastActive: time.Now(),
	}
}

// Bind records one more connection attached to this session.
func (s *Session) Bind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bound++
	s.lastActive = time.Now()
}

// Unbind records a connection leaving. The buzz order is deliberately
// left untouched: a departed participant keeps their queue slot, and
// the turn is held for a disconnected current answerer.
func (s *Session) Unbind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bound > 0 {
		s.bound--
	}
	s.lastActive = time.Now()
}

// Snapshot returns a copy of the session state safe to hand to a client.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() State {
	return State{
		RoomID:               s.roomID,
		CurrentQuestionIndex: s.currentQuestionIndex,
		BuzzOrder:            slices.Clone(s.buzzOrder),
		CurrentAnswerer:      s.currentAnswerer,
		Attempts:             s.attempts,
		Status:               s.status,
	}
}

// resetLocked clears the per-question state back to waiting. The
// question index is not touched; advancing it is the timer's job.
func (s *Session) resetLocked() {
	s.buzzOrder = []uint{}
	s.currentAnswerer = 0
	s.attempts = 0
	s.status = StatusWaiting
}

func (s *Session) touchLocked() {
	s.lastActive = time.Now()
}

// cancelAdvanceLocked stops any pending question-advance timer and
// bumps the generation so an already-fired callback no-ops.
func (s *Session) cancelAdvanceLocked() {
	if s.advanceTimer != nil {
		s.advanceTimer.Stop()
		s.advanceTimer = nil
	}
	s.advanceGen++
}

// evict marks the session dead and cancels its timer. A stale advance
// callback that races the eviction sees the flag and does nothing.
func (s *Session) evict() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evicted = true
	s.cancelAdvanceLocked()
}

func (s *Session) idle(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound == 0 && now.Sub(s.lastActive) >= ttl
}

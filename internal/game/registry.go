package game

import (
	"log"
	"sync"
	"time"
)

const sweepInterval = 30 * time.Second

// Registry owns the roomID -> Session mapping. Sessions are created
// lazily on first join and evicted by a janitor once no connections
// remain bound and the idle TTL has passed.
type Registry struct {
	mu       sync.Mutex
	sessions map[uint]*Session
	idleTTL  time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRegistry starts the eviction janitor unless idleTTL is zero or
// negative, in which case sessions live until removed explicitly.
func NewRegistry(idleTTL time.Duration) *Registry {
	r := &Registry{
		sessions: make(map[uint]*Session),
		idleTTL:  idleTTL,
		stop:     make(chan struct{}),
	}
	if idleTTL > 0 {
		go r.run()
	}
	return r
}

func (r *Registry) run() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := r.evictIdle(time.Now()); n > 0 {
				log.Printf("game: evicted %d idle session(s)", n)
			}
		case <-r.stop:
			return
		}
	}
}

// Close stops the janitor. Live sessions are left in place.
func (r *Registry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// GetOrCreate returns the room's session, allocating a fresh one in
// the waiting state if none exists. Existing sessions are never
// mutated here.
func (r *Registry) GetOrCreate(roomID uint) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.sessions[roomID]; ok {
		return sess
	}
	sess := newSession(roomID)
	r.sessions[roomID] = sess
	log.Printf("game: session created for room %d", roomID)
	return sess
}

func (r *Registry) Get(roomID uint) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[roomID]
	return sess, ok
}

// Remove evicts the room's session immediately, cancelling any pending
// question-advance timer.
func (r *Registry) Remove(roomID uint) {
	r.mu.Lock()
	sess, ok := r.sessions[roomID]
	if ok {
		delete(r.sessions, roomID)
	}
	r.mu.Unlock()
	if ok {
		sess.evict()
		log.Printf("game: session removed for room %d", roomID)
	}
}

// evictIdle runs one janitor pass and returns how many sessions it
// removed.
func (r *Registry) evictIdle(now time.Time) int {
	r.mu.Lock()
	var idle []*Session
	for roomID, sess := range r.sessions {
		if sess.idle(now, r.idleTTL) {
			delete(r.sessions, roomID)
			idle = append(idle, sess)
		}
	}
	r.mu.Unlock()

	for _, sess := range idle {
		sess.evict()
	}
	return len(idle)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

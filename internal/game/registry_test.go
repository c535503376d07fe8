package game

import (
	"sync"
	"testing"
	"time"
)

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	r := NewRegistry(time.Minute)
	defer r.Close()

	a := r.GetOrCreate(7)
	b := r.GetOrCreate(7)
	if a != b {
		t.Fatal("GetOrCreate returned different sessions for the same room")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	got, ok := r.Get(7)
	if !ok || got != a {
		t.Errorf("Get(7) = %v, %v", got, ok)
	}
	if _, ok := r.Get(8); ok {
		t.Error("Get(8) found a session that was never created")
	}
}

func TestGetOrCreateConcurrent(t *testing.T) {
	r := NewRegistry(time.Minute)
	defer r.Close()

	sessions := make([]*Session, 16)
	var wg sync.WaitGroup
	for i := range sessions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessions[i] = r.GetOrCreate(42)
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(sessions); i++ {
		if sessions[i] != sessions[0] {
			t.Fatal("concurrent GetOrCreate produced distinct sessions")
		}
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRemove(t *testing.T) {
	r := NewRegistry(time.Minute)
	defer r.Close()

	r.GetOrCreate(7)
	r.Remove(7)
	if _, ok := r.Get(7); ok {
		t.Error("session still present after Remove")
	}
	// Removing a missing room is a no-op.
	r.Remove(7)
}

func TestEvictIdleSkipsBoundSessions(t *testing.T) {
	r := NewRegistry(10 * time.Minute)
	defer r.Close()

	sess := r.GetOrCreate(7)
	sess.Bind()

	later := time.Now().Add(time.Hour)
	if n := r.evictIdle(later); n != 0 {
		t.Fatalf("evicted %d session(s) with a live connection", n)
	}

	sess.Unbind()
	if n := r.evictIdle(time.Now()); n != 0 {
		t.Fatalf("evicted %d session(s) before the TTL elapsed", n)
	}
	if n := r.evictIdle(later); n != 1 {
		t.Fatalf("evictIdle = %d, want 1", n)
	}
	if _, ok := r.Get(7); ok {
		t.Error("session still present after idle eviction")
	}
}

func TestCloseIdempotent(t *testing.T) {
	r := NewRegistry(time.Minute)
	r.Close()
	r.Close()
}

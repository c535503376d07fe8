package services

import (
	"strings"
	"testing"
)

func TestRoomCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := roomCode(roomCodeLength)
		if len(code) != roomCodeLength {
			t.Fatalf("roomCode length = %d, want %d", len(code), roomCodeLength)
		}
		for _, ch := range code {
			if !strings.ContainsRune(roomCodeChars, ch) {
				t.Fatalf("roomCode produced %q with character %q outside the charset", code, ch)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("roomCode produced the same code 100 times")
	}
}

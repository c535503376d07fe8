package game

// Status is the live-game state of a room's session.
type Status string

const (
	// StatusWaiting: no question is open; buzzing is not possible.
	StatusWaiting Status = "waiting"
	// StatusQuestion: a question is open and nobody has buzzed yet.
	StatusQuestion Status = "question"
	// StatusBuzzing: participants have buzzed but nobody holds the turn.
	StatusBuzzing Status = "buzzing"
	// StatusAnswering: one participant holds the exclusive right to answer.
	StatusAnswering Status = "answering"
	// StatusRevealed: the correct answer is visible to the room.
	StatusRevealed Status = "revealed"
)

// buzzable reports whether a buzz may be accepted in this state.
// Buzzing while someone is answering queues the buzzer without
// preempting the current answerer.
func (s Status) buzzable() bool {
	switch s {
	case StatusQuestion, StatusBuzzing, StatusAnswering:
		return true
	case StatusWaiting, StatusRevealed:
		return false
	}
	return false
}

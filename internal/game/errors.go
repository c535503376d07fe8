package game

import "errors"

var (
	// ErrNotYourTurn is returned when a participant submits an answer
	// without holding the turn.
	ErrNotYourTurn = errors.New("not your turn to answer")

	// ErrSessionNotFound is returned when an operation targets a room
	// with no live session.
	ErrSessionNotFound = errors.New("no active session for room")

	ErrRoomNotFound        = errors.New("room not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrDuplicateAnswer is returned by the store when an answer for the
	// same (question, participant, attempt) key was already recorded.
	ErrDuplicateAnswer = errors.New("answer already recorded for this attempt")
)

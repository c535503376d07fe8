package game

import (
	"context"
	"log"
	"strings"
	"time"
)

// Broadcaster fans an event out to every connection bound to a room.
// Within one room, events are delivered in the order the corresponding
// state transitions commit; the coordinator guarantees that by
// broadcasting while it still holds the session lock.
type Broadcaster interface {
	ToRoom(roomID uint, event string, data any)
}

// Coordinator drives the buzz/answer/advance protocol for every live
// session. One instance serves the whole process; per-room locking
// keeps independent rooms fully parallel.
type Coordinator struct {
	registry     *Registry
	store        Store
	broadcast    Broadcaster
	advanceDelay time.Duration
}

func NewCoordinator(registry *Registry, store Store, broadcast Broadcaster, advanceDelay time.Duration) *Coordinator {
	return &Coordinator{
		registry:     registry,
		store:        store,
		broadcast:    broadcast,
		advanceDelay: advanceDelay,
	}
}

// StartQuestion opens the current question for buzzing. It resets the
// buzz order, the turn and the attempt counter regardless of prior
// state, so a double-click from the teacher is harmless.
func (c *Coordinator) StartQuestion(roomID uint) {
	sess := c.registry.GetOrCreate(roomID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.cancelAdvanceLocked()
	sess.resetLocked()
	sess.status = StatusQuestion
	sess.touchLocked()

	c.broadcast.ToRoom(roomID, EventQuestionStarted, QuestionStarted{
		QuestionIndex: sess.currentQuestionIndex,
	})
	log.Printf("game: question %d started in room %d", sess.currentQuestionIndex, roomID)
}

// Buzz appends the participant to the buzz order. Buzzing is a race:
// a buzz outside the open window or a repeat buzz is dropped silently
// rather than rejected. The first buzzer takes the turn; later buzzers
// queue behind whoever currently holds it.
func (c *Coordinator) Buzz(roomID, participantID uint, nickname string) error {
	sess, ok := c.registry.Get(roomID)
	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.status.buzzable() {
		return nil
	}
	for _, id := range sess.buzzOrder {
		if id == participantID {
			return nil
		}
	}

	sess.buzzOrder = append(sess.buzzOrder, participantID)
	if sess.currentAnswerer == 0 {
		sess.currentAnswerer = participantID
		sess.status = StatusAnswering
	}
	sess.touchLocked()

	c.broadcast.ToRoom(roomID, EventBuzzReceived, BuzzReceived{
		ParticipantID:     participantID,
		Nickname:          nickname,
		BuzzOrder:         sess.snapshotLocked().BuzzOrder,
		IsCurrentAnswerer: sess.currentAnswerer == participantID,
	})
	log.Printf("game: %s buzzed in room %d (queue %d)", nickname, roomID, len(sess.buzzOrder))
	return nil
}

// SubmitAnswer grades the current answerer's submission and moves the
// session forward. The session lock is held across the store round
// trips, so the turn cannot change under a submission that is already
// being graded; a second delivery of the same event fails the turn
// check before it can touch the score.
//
// Store lookup failures abort the transition with the session state
// untouched.
func (c *Coordinator) SubmitAnswer(ctx context.Context, roomID, participantID uint, nickname string, questionID uint, answerText string) error {
	sess, ok := c.registry.Get(roomID)
	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.status != StatusAnswering || sess.currentAnswerer != participantID {
		return ErrNotYourTurn
	}

	question, err := c.store.FindQuestion(ctx, questionID)
	if err != nil {
		return err
	}
	room, err := c.store.FindRoomConfig(ctx, roomID)
	if err != nil {
		return err
	}

	isCorrect := answersMatch(answerText, question.CorrectAnswer)
	attemptNumber := sess.attempts + 1

	if err := c.store.RecordAnswer(ctx, AnswerRecord{
		QuestionID:    questionID,
		ParticipantID: participantID,
		Text:          answerText,
		IsCorrect:     isCorrect,
		AttemptNumber: attemptNumber,
	}); err != nil {
		return err
	}

	sess.touchLocked()

	if isCorrect {
		newScore, err := c.store.IncrementScore(ctx, participantID, question.Points)
		if err != nil {
			return err
		}
		c.broadcast.ToRoom(roomID, EventAnswerResult, AnswerResult{
			ParticipantID: participantID,
			Nickname:      nickname,
			Answer:        answerText,
			IsCorrect:     true,
			CorrectAnswer: question.CorrectAnswer,
			NewScore:      newScore,
			Points:        question.Points,
		})
		sess.resetLocked()
		c.scheduleAdvanceLocked(sess)
		log.Printf("game: %s answered correctly in room %d (+%d)", nickname, roomID, question.Points)
		return nil
	}

	sess.attempts = attemptNumber

	if sess.attempts >= room.MaxAttempts {
		c.broadcast.ToRoom(roomID, EventAnswerResult, AnswerResult{
			ParticipantID:      participantID,
			Nickname:           nickname,
			Answer:             answerText,
			IsCorrect:          false,
			CorrectAnswer:      question.CorrectAnswer,
			MaxAttemptsReached: true,
		})
		sess.resetLocked()
		c.scheduleAdvanceLocked(sess)
		log.Printf("game: room %d exhausted %d attempts, answer revealed", roomID, room.MaxAttempts)
		return nil
	}

	// Pass the turn to the next buzzer in line. A lone buzzer keeps
	// the turn and retries; once several have played through, the
	// queue exhausting reopens buzzing with nobody holding the turn.
	var next uint
	for i, id := range sess.buzzOrder {
		if id == participantID && i+1 < len(sess.buzzOrder) {
			next = sess.buzzOrder[i+1]
			break
		}
	}
	if next == 0 && len(sess.buzzOrder) == 1 {
		next = participantID
	}
	sess.currentAnswerer = next
	if next != 0 {
		sess.status = StatusAnswering
	} else {
		sess.status = StatusBuzzing
	}

	c.broadcast.ToRoom(roomID, EventAnswerResult, AnswerResult{
		ParticipantID:     participantID,
		Nickname:          nickname,
		Answer:            answerText,
		IsCorrect:         false,
		AttemptsRemaining: room.MaxAttempts - sess.attempts,
		NextAnswerer:      sess.currentAnswerer,
	})
	log.Printf("game: %s answered wrong in room %d (attempt %d/%d)", nickname, roomID, sess.attempts, room.MaxAttempts)
	return nil
}

// scheduleAdvanceLocked arms the deferred move to the next question.
// The generation captured here lets a cancelled or evicted session
// swallow a late timer fire instead of resurrecting stale state.
func (c *Coordinator) scheduleAdvanceLocked(sess *Session) {
	sess.cancelAdvanceLocked()
	gen := sess.advanceGen
	sess.advanceTimer = time.AfterFunc(c.advanceDelay, func() {
		c.advance(sess, gen)
	})
}

func (c *Coordinator) advance(sess *Session, gen uint64) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.evicted || gen != sess.advanceGen {
		return
	}
	sess.advanceTimer = nil
	sess.currentQuestionIndex++
	sess.status = StatusQuestion
	sess.touchLocked()

	c.broadcast.ToRoom(sess.roomID, EventNextQuestion, NextQuestion{
		QuestionIndex: sess.currentQuestionIndex,
	})
	log.Printf("game: room %d advanced to question %d", sess.roomID, sess.currentQuestionIndex)
}

// answersMatch is the whole grading algorithm: a case-insensitive,
// whitespace-trimmed exact match.
func answersMatch(submitted, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(correct))
}

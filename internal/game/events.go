package game

// Event names shared between the gateway and the web clients. Inbound
// and outbound names mirror each other where the protocol is symmetric.
const (
	EventConnected         = "connected"
	EventError             = "error"
	EventJoinRoom          = "join-room"
	EventGameState         = "game-state"
	EventParticipantJoined = "participant-joined"
	EventParticipantLeft   = "participant-left"
	EventStartQuestion     = "start-question"
	EventQuestionStarted   = "question-started"
	EventBuzz              = "buzz"
	EventBuzzReceived      = "buzz-received"
	EventSubmitAnswer      = "submit-answer"
	EventAnswerResult      = "answer-result"
	EventNextQuestion      = "next-question"

	EventScreenMonitoringRequest  = "request-screen-monitoring"
	EventScreenMonitoringForward  = "screen-monitoring-request"
	EventScreenMonitoringResponse = "screen-monitoring-response"
	EventScreenMonitoringStop     = "stop-screen-monitoring"
	EventScreenMonitoringStopped  = "screen-monitoring-stopped"
)

// State is a point-in-time snapshot of a session, sent to a client on
// join and whenever the full picture is needed.
type State struct {
	RoomID               uint   `json:"roomId"`
	CurrentQuestionIndex int    `json:"currentQuestionIndex"`
	BuzzOrder            []uint `json:"buzzOrder"`
	CurrentAnswerer      uint   `json:"currentAnswerer,omitempty"`
	Attempts             int    `json:"attempts"`
	Status               Status `json:"status"`
}

type ParticipantJoined struct {
	ParticipantID uint   `json:"participantId"`
	Nickname      string `json:"nickname"`
	Score         int    `json:"score"`
}

type ParticipantLeft struct {
	ParticipantID uint   `json:"participantId"`
	Nickname      string `json:"nickname"`
}

type QuestionStarted struct {
	QuestionIndex int `json:"questionIndex"`
}

type BuzzReceived struct {
	ParticipantID     uint   `json:"participantId"`
	Nickname          string `json:"nickname"`
	BuzzOrder         []uint `json:"buzzOrder"`
	IsCurrentAnswerer bool   `json:"isCurrentAnswerer"`
}

// AnswerResult carries the outcome of a graded answer. Fields beyond
// the common set are populated per outcome: a correct answer carries
// NewScore and Points, a wrong answer below the attempt cap carries
// AttemptsRemaining and NextAnswerer, and hitting the cap reveals
// CorrectAnswer with MaxAttemptsReached set.
type AnswerResult struct {
	ParticipantID      uint   `json:"participantId"`
	Nickname           string `json:"nickname"`
	Answer             string `json:"answer"`
	IsCorrect          bool   `json:"isCorrect"`
	CorrectAnswer      string `json:"correctAnswer,omitempty"`
	NewScore           int    `json:"newScore,omitempty"`
	Points             int    `json:"points,omitempty"`
	AttemptsRemaining  int    `json:"attemptsRemaining,omitempty"`
	NextAnswerer       uint   `json:"nextAnswerer,omitempty"`
	MaxAttemptsReached bool   `json:"maxAttemptsReached,omitempty"`
}

type NextQuestion struct {
	QuestionIndex int `json:"questionIndex"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

type ScreenMonitoringRequest struct {
	ParticipantID uint `json:"participantId"`
	TeacherID     uint `json:"teacherId"`
	RoomID        uint `json:"roomId,omitempty"`
}

type ScreenMonitoringResponse struct {
	ParticipantID uint `json:"participantId"`
	Granted       bool `json:"granted"`
}

type ScreenMonitoringStopped struct {
	ParticipantID uint `json:"participantId"`
	TeacherID     uint `json:"teacherId,omitempty"`
}

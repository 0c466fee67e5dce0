package ws

import (
	"encoding/json"

	"github.com/Abhinavsharma005/EduStream-2/internal/services/liveroom"
)

// Envelope wraps every WS frame.
type Envelope struct {
	Event string          `json:"event"`          // e.g. "vote-poll"
	Body  json.RawMessage `json:"body,omitempty"` // arbitrary JSON object
}

// Client -> server events.
const (
	EvtJoinRoom    = "join-room"
	EvtSendMessage = "send-message"
	EvtCreatePoll  = "create-poll"
	EvtVotePoll    = "vote-poll"
	EvtCreateQuiz  = "create-quiz"
	EvtAnswerQuiz  = "answer-quiz"
)

// Server -> client events.
const (
	EvtParticipantCount  = "update-participant-count"
	EvtSyncRoomState     = "sync-room-state"
	EvtUserJoined        = "user-joined"
	EvtNewMessage        = "new-message"
	EvtNewPoll           = "new-poll"
	EvtUpdatePollResults = "update-poll-results"
	EvtNewQuiz           = "new-quiz"
	EvtUpdateQuizResults = "update-quiz-results"
	EvtError             = "error"
)

// ──────────────────────────── Request DTOs ───────────────────────────────────

// JoinRoomBody is the body for "join-room". The roomId is the persisted
// session id; the room layer takes it at face value.
type JoinRoomBody struct {
	RoomID string `json:"roomId" validate:"required"`
	UserID string `json:"userId" validate:"required"`
}

// ChatMessageBody is relayed verbatim; the server only stamps a timestamp.
type ChatMessageBody struct {
	RoomID   string `json:"roomId"   validate:"required"`
	Message  string `json:"message"  validate:"required"`
	Sender   string `json:"sender"   validate:"required"`
	SenderID string `json:"senderId" validate:"required"`
}

type CreatePollBody struct {
	RoomID   string   `json:"roomId"   validate:"required"`
	Question string   `json:"question" validate:"required"`
	Options  []string `json:"options"  validate:"min=2,dive,required"`
}

type VotePollBody struct {
	RoomID      string `json:"roomId" validate:"required"`
	PollID      string `json:"pollId" validate:"required"`
	OptionIndex int    `json:"optionIndex" validate:"gte=0"`
}

type CreateQuizBody struct {
	RoomID       string   `json:"roomId"   validate:"required"`
	Question     string   `json:"question" validate:"required"`
	Options      []string `json:"options"  validate:"min=2,dive,required"`
	CorrectIndex int      `json:"correctIndex" validate:"gte=0"`
}

type AnswerQuizBody struct {
	RoomID      string `json:"roomId" validate:"required"`
	QuizID      string `json:"quizId" validate:"required"`
	OptionIndex int    `json:"optionIndex" validate:"gte=0"`
	StudentName string `json:"studentName"`
}

// ──────────────────────────── Response DTOs ──────────────────────────────────

type ParticipantCountBody struct {
	Count int `json:"count"`
}

type UserJoinedBody struct {
	UserID string `json:"userId"`
}

type NewMessageBody struct {
	RoomID    string `json:"roomId"`
	Message   string `json:"message"`
	Sender    string `json:"sender"`
	SenderID  string `json:"senderId"`
	Timestamp int64  `json:"timestamp"`
}

type PollResultsBody struct {
	Poll liveroom.Poll `json:"poll"`
}

type QuizResultsBody struct {
	QuizID  string      `json:"quizId"`
	Answers map[int]int `json:"answers"`
}

// ErrorBody is returned to the sender for rejected events.
type ErrorBody struct {
	Error string `json:"error"`
}

// encodeEvent marshals an envelope for fan-out. Bodies are our own structs;
// a marshal failure here is a programming error.
func encodeEvent(event string, body any) []byte {
	raw, err := json.Marshal(body)
	if err != nil {
		panic("ws: encode " + event + ": " + err.Error())
	}
	data, err := json.Marshal(Envelope{Event: event, Body: raw})
	if err != nil {
		panic("ws: encode " + event + ": " + err.Error())
	}
	return data
}

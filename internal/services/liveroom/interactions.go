package liveroom

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPollNotFound     = errors.New("poll not found")
	ErrPollClosed       = errors.New("poll closed")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuizClosed       = errors.New("quiz closed")
	ErrOptionOutOfRange = errors.New("option index out of range")
	ErrAlreadyVoted     = errors.New("already voted")
	ErrAlreadyAnswered  = errors.New("already answered")
)

// InteractionStore holds the per-room poll and quiz collections. Sequences
// keep creation order; that order is what late joiners render. Only tallies
// mutate after creation.
//
// One vote per user per poll (and one answer per quiz) is enforced here, so
// a rigged client cannot inflate results.
type InteractionStore struct {
	mu         sync.Mutex
	polls      map[string][]*Poll // roomID -> polls, creation order
	quizzes    map[string][]*Quiz
	voters     map[string]map[string]struct{} // pollID -> userIDs that voted
	responders map[string]map[string]struct{} // quizID -> userIDs that answered
}

func NewInteractionStore() *InteractionStore {
	return &InteractionStore{
		polls:      make(map[string][]*Poll),
		quizzes:    make(map[string][]*Quiz),
		voters:     make(map[string]map[string]struct{}),
		responders: make(map[string]map[string]struct{}),
	}
}

// CreatePoll appends a new poll with zeroed tallies to the room's sequence
// and returns a copy safe to marshal.
func (s *InteractionStore) CreatePoll(roomID, question string, options []string) Poll {
	opts := make([]PollOption, len(options))
	for i, text := range options {
		opts[i] = PollOption{Text: text}
	}
	p := &Poll{
		ID:        uuid.NewString(),
		Question:  question,
		Options:   opts,
		Active:    true,
		CreatedAt: time.Now().UnixMilli(),
	}

	s.mu.Lock()
	s.polls[roomID] = append(s.polls[roomID], p)
	s.voters[p.ID] = make(map[string]struct{})
	s.mu.Unlock()

	return p.clone()
}

// Vote increments one option tally by exactly 1 and returns the updated
// poll. Rejected when the poll is unknown or closed, the index is out of
// range, or the user voted before.
func (s *InteractionStore) Vote(roomID, pollID string, optionIndex int, userID string) (Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := findPoll(s.polls[roomID], pollID)
	if p == nil {
		return Poll{}, ErrPollNotFound
	}
	if !p.Active {
		return Poll{}, ErrPollClosed
	}
	if optionIndex < 0 || optionIndex >= len(p.Options) {
		return Poll{}, ErrOptionOutOfRange
	}
	if _, dup := s.voters[pollID][userID]; dup {
		return Poll{}, ErrAlreadyVoted
	}
	s.voters[pollID][userID] = struct{}{}

	p.Options[optionIndex].Votes++
	return p.clone(), nil
}

// CreateQuiz appends a new quiz with a zero-initialised counter for every
// option index, so result payloads always cover the full option range. A
// correct index outside the options makes the quiz unanswerable, so it is
// rejected here like an out-of-range vote.
func (s *InteractionStore) CreateQuiz(roomID, question string, options []string, correctIndex int) (Quiz, error) {
	if correctIndex < 0 || correctIndex >= len(options) {
		return Quiz{}, ErrOptionOutOfRange
	}
	q := &Quiz{
		ID:                 uuid.NewString(),
		Question:           question,
		Options:            append([]string(nil), options...),
		CorrectOptionIndex: correctIndex,
		Answers:            make(map[int]int, len(options)),
		Active:             true,
		CreatedAt:          time.Now().UnixMilli(),
	}
	for i := range options {
		q.Answers[i] = 0
	}

	s.mu.Lock()
	s.quizzes[roomID] = append(s.quizzes[roomID], q)
	s.responders[q.ID] = make(map[string]struct{})
	s.mu.Unlock()

	return q.clone(), nil
}

// Answer tallies one quiz response and returns the full updated answers map
// (not a delta) so any receiver converges without replaying history. A
// missing counter is treated as 0 before the increment.
func (s *InteractionStore) Answer(roomID, quizID string, optionIndex int, userID string) (map[int]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := findQuiz(s.quizzes[roomID], quizID)
	if q == nil {
		return nil, ErrQuizNotFound
	}
	if !q.Active {
		return nil, ErrQuizClosed
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return nil, ErrOptionOutOfRange
	}
	if _, dup := s.responders[quizID][userID]; dup {
		return nil, ErrAlreadyAnswered
	}
	s.responders[quizID][userID] = struct{}{}

	q.Answers[optionIndex] = q.Answers[optionIndex] + 1

	out := make(map[int]int, len(q.Answers))
	for i, n := range q.Answers {
		out[i] = n
	}
	return out, nil
}

// Snapshot returns copies of the room's creation-ordered sequences. Slices
// are non-nil so the wire payload is always {"polls":[],"quizzes":[]}.
func (s *InteractionStore) Snapshot(roomID string) RoomState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := RoomState{
		Polls:   make([]Poll, 0, len(s.polls[roomID])),
		Quizzes: make([]Quiz, 0, len(s.quizzes[roomID])),
	}
	for _, p := range s.polls[roomID] {
		st.Polls = append(st.Polls, p.clone())
	}
	for _, q := range s.quizzes[roomID] {
		st.Quizzes = append(st.Quizzes, q.clone())
	}
	return st
}

func findPoll(polls []*Poll, id string) *Poll {
	for _, p := range polls {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func findQuiz(quizzes []*Quiz, id string) *Quiz {
	for _, q := range quizzes {
		if q.ID == id {
			return q
		}
	}
	return nil
}

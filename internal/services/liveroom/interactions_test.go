package liveroom

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePollZeroTallies(t *testing.T) {
	s := NewInteractionStore()
	p := s.CreatePoll("r1", "favourite language?", []string{"Go", "Rust"})

	require.NotEmpty(t, p.ID)
	assert.True(t, p.Active)
	require.Len(t, p.Options, 2)
	assert.Equal(t, PollOption{Text: "Go"}, p.Options[0])
	assert.Equal(t, PollOption{Text: "Rust"}, p.Options[1])
	assert.NotZero(t, p.CreatedAt)
}

func TestVoteTallies(t *testing.T) {
	// two students pick option 0, one picks option 1
	s := NewInteractionStore()
	p := s.CreatePoll("r2", "q", []string{"A", "B"})

	_, err := s.Vote("r2", p.ID, 0, "stu1")
	require.NoError(t, err)
	_, err = s.Vote("r2", p.ID, 0, "stu2")
	require.NoError(t, err)
	updated, err := s.Vote("r2", p.ID, 1, "stu3")
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Options[0].Votes)
	assert.Equal(t, 1, updated.Options[1].Votes)
}

func TestVoteNTimesDistinctUsers(t *testing.T) {
	s := NewInteractionStore()
	p := s.CreatePoll("r1", "q", []string{"A", "B", "C"})

	const n = 25
	var last Poll
	for i := 0; i < n; i++ {
		var err error
		last, err = s.Vote("r1", p.ID, 1, fmt.Sprintf("u%d", i))
		require.NoError(t, err)
	}
	assert.Equal(t, 0, last.Options[0].Votes)
	assert.Equal(t, n, last.Options[1].Votes)
	assert.Equal(t, 0, last.Options[2].Votes)
}

func TestVoteRejections(t *testing.T) {
	s := NewInteractionStore()
	p := s.CreatePoll("r1", "q", []string{"A", "B"})

	_, err := s.Vote("r1", "nope", 0, "u1")
	assert.ErrorIs(t, err, ErrPollNotFound)

	_, err = s.Vote("other-room", p.ID, 0, "u1")
	assert.ErrorIs(t, err, ErrPollNotFound)

	_, err = s.Vote("r1", p.ID, 2, "u1")
	assert.ErrorIs(t, err, ErrOptionOutOfRange)
	_, err = s.Vote("r1", p.ID, -1, "u1")
	assert.ErrorIs(t, err, ErrOptionOutOfRange)

	_, err = s.Vote("r1", p.ID, 0, "u1")
	require.NoError(t, err)
	_, err = s.Vote("r1", p.ID, 1, "u1")
	assert.ErrorIs(t, err, ErrAlreadyVoted)

	// the rejected vote must not have drifted any tally
	st := s.Snapshot("r1")
	require.Len(t, st.Polls, 1)
	assert.Equal(t, 1, st.Polls[0].Options[0].Votes)
	assert.Equal(t, 0, st.Polls[0].Options[1].Votes)
}

func TestCreateQuizInitialisesAllCounters(t *testing.T) {
	s := NewInteractionStore()
	q, err := s.CreateQuiz("r3", "q", []string{"A", "B", "C"}, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, q.CorrectOptionIndex)
	assert.Equal(t, map[int]int{0: 0, 1: 0, 2: 0}, q.Answers)
}

func TestCreateQuizRejectsOutOfRangeCorrectIndex(t *testing.T) {
	s := NewInteractionStore()

	_, err := s.CreateQuiz("r3", "q", []string{"A", "B"}, 2)
	assert.ErrorIs(t, err, ErrOptionOutOfRange)
	_, err = s.CreateQuiz("r3", "q", []string{"A", "B"}, -1)
	assert.ErrorIs(t, err, ErrOptionOutOfRange)

	// nothing half-created sticks around
	assert.Empty(t, s.Snapshot("r3").Quizzes)
}

func TestAnswerReturnsFullMap(t *testing.T) {
	// one student answers option 2; the payload must still carry entries
	// for options 0 and 1
	s := NewInteractionStore()
	q, err := s.CreateQuiz("r3", "q", []string{"A", "B", "C"}, 0)
	require.NoError(t, err)

	answers, err := s.Answer("r3", q.ID, 2, "stu1")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{0: 0, 1: 0, 2: 1}, answers)
}

func TestAnswerRejections(t *testing.T) {
	s := NewInteractionStore()
	q, err := s.CreateQuiz("r1", "q", []string{"A", "B"}, 1)
	require.NoError(t, err)

	_, err = s.Answer("r1", "nope", 0, "u1")
	assert.ErrorIs(t, err, ErrQuizNotFound)

	_, err = s.Answer("r1", q.ID, 5, "u1")
	assert.ErrorIs(t, err, ErrOptionOutOfRange)

	_, err = s.Answer("r1", q.ID, 0, "u1")
	require.NoError(t, err)
	_, err = s.Answer("r1", q.ID, 1, "u1")
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
}

func TestSnapshotPreservesCreationOrder(t *testing.T) {
	s := NewInteractionStore()
	p1 := s.CreatePoll("r1", "first", []string{"A", "B"})
	p2 := s.CreatePoll("r1", "second", []string{"C", "D"})
	q1, err := s.CreateQuiz("r1", "quiz", []string{"X", "Y"}, 0)
	require.NoError(t, err)

	// votes must never reorder the sequence
	_, err = s.Vote("r1", p2.ID, 0, "u1")
	require.NoError(t, err)

	st := s.Snapshot("r1")
	require.Len(t, st.Polls, 2)
	require.Len(t, st.Quizzes, 1)
	assert.Equal(t, p1.ID, st.Polls[0].ID)
	assert.Equal(t, p2.ID, st.Polls[1].ID)
	assert.Equal(t, q1.ID, st.Quizzes[0].ID)
}

func TestSnapshotEmptyRoom(t *testing.T) {
	s := NewInteractionStore()
	st := s.Snapshot("empty")
	assert.NotNil(t, st.Polls)
	assert.NotNil(t, st.Quizzes)
	assert.Empty(t, st.Polls)
	assert.Empty(t, st.Quizzes)
}

func TestSnapshotReturnsCopies(t *testing.T) {
	s := NewInteractionStore()
	p := s.CreatePoll("r1", "q", []string{"A"})

	st := s.Snapshot("r1")
	st.Polls[0].Options[0].Votes = 99

	_, err := s.Vote("r1", p.ID, 0, "u1")
	require.NoError(t, err)
	got := s.Snapshot("r1")
	assert.Equal(t, 1, got.Polls[0].Options[0].Votes)
}

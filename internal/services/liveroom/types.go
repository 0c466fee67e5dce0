package liveroom

// PollOption is one choice of a poll with its running tally.
type PollOption struct {
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

// Poll is immutable after creation except for the option tallies.
type Poll struct {
	ID        string       `json:"id"`
	Question  string       `json:"question"`
	Options   []PollOption `json:"options"`
	Active    bool         `json:"active"`
	CreatedAt int64        `json:"createdAt"`
}

// Quiz carries the correct option index for the teacher UI; students only
// render the aggregate answer counts.
type Quiz struct {
	ID                 string      `json:"id"`
	Question           string      `json:"question"`
	Options            []string    `json:"options"`
	CorrectOptionIndex int         `json:"correctOptionIndex"`
	Answers            map[int]int `json:"answers"` // optionIndex -> count
	Active             bool        `json:"active"`
	CreatedAt          int64       `json:"createdAt"`
}

// RoomState is the creation-ordered material a late joiner needs to catch up.
type RoomState struct {
	Polls   []Poll `json:"polls"`
	Quizzes []Quiz `json:"quizzes"`
}

func (p Poll) clone() Poll {
	cp := p
	cp.Options = make([]PollOption, len(p.Options))
	copy(cp.Options, p.Options)
	return cp
}

func (q Quiz) clone() Quiz {
	cq := q
	cq.Options = make([]string, len(q.Options))
	copy(cq.Options, q.Options)
	cq.Answers = make(map[int]int, len(q.Answers))
	for i, n := range q.Answers {
		cq.Answers[i] = n
	}
	return cq
}

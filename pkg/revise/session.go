package revise

import (
	"time"

	"github.com/google/uuid"
)

// Session is one learning session: the items selected for it and the
// running response tally.
type Session struct {
	ID        string    `json:"sessionId"`
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt,omitempty"`
	Items     []string  `json:"items"`
	Responses int       `json:"responses"`
	Correct   int       `json:"correct"`
	Accuracy  float64   `json:"accuracy"`
}

func newSession(items []string, now time.Time) Session {
	return Session{
		ID:        uuid.NewString(),
		StartedAt: now,
		Items:     items,
	}
}

func (s *Session) recordResponse(isCorrect bool) {
	s.Responses++
	if isCorrect {
		s.Correct++
	}
}

func (s *Session) close(now time.Time) {
	s.EndedAt = now
	if s.Responses > 0 {
		s.Accuracy = float64(s.Correct) / float64(s.Responses)
	}
}

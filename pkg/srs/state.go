package srs

import (
	"math"
	"time"
)

// ItemState is the per-item learning state tracked by the scheduler.
// It is a plain value: the updater returns a modified copy and never
// mutates its input.
type ItemState struct {
	ID                string    `json:"id"`
	Phase             Phase     `json:"phase"`
	Stability         float64   `json:"stability"`         // days; 0 before first review
	Difficulty        float64   `json:"difficulty"`        // normalized [0,1]
	Retrievability    float64   `json:"retrievability"`    // [0,1]
	RepsTotal         int       `json:"repsTotal"`
	RepsCorrect       int       `json:"repsCorrect"`
	StreakCorrect     int       `json:"streakCorrect"`
	LapseCount        int       `json:"lapseCount"`
	AvgResponseTimeMs float64   `json:"avgResponseTimeMs"` // EMA; 0 until first response
	HintUsedCount     int       `json:"hintUsedCount"`
	CreatedAt         time.Time `json:"createdAt"`
	LastReviewedAt    time.Time `json:"lastReviewedAt"` // zero until first review
	NextDueAt         time.Time `json:"nextDueAt"`
	IntervalMs        int64     `json:"intervalMs"`
	Uncertainty       float64   `json:"uncertainty"` // [0.1,1]
	Priority          float64   `json:"priority"`    // derived, refreshed on demand
}

// NewItemState returns the default state for a never-seen item: NEW phase,
// zero stability, difficulty 0.3, full retrievability, due immediately.
func NewItemState(id string, now time.Time) ItemState {
	return ItemState{
		ID:             id,
		Phase:          New,
		Stability:      0,
		Difficulty:     0.3,
		Retrievability: 1.0,
		Uncertainty:    1.0,
		CreatedAt:      now,
		NextDueAt:      now,
	}
}

// RetrievabilityAt returns the estimated recall probability at the given
// time, decaying exponentially with days elapsed since the last review
// relative to stability. Items that have never been reviewed (or carry no
// stability) are fully retrievable.
func (s ItemState) RetrievabilityAt(now time.Time) float64 {
	if s.LastReviewedAt.IsZero() || s.Stability <= 0 {
		return 1.0
	}
	days := now.Sub(s.LastReviewedAt).Hours() / 24.0
	return clamp01(math.Exp(-days / s.Stability))
}

// Accuracy returns repsCorrect/repsTotal, or 0 when the item has no reviews.
func (s ItemState) Accuracy() float64 {
	if s.RepsTotal == 0 {
		return 0
	}
	return float64(s.RepsCorrect) / float64(s.RepsTotal)
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

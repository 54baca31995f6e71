package srs

import (
	"math"
	"time"
)

// Scorer computes retrieval priority for ranking items.
type Scorer struct {
	params Params
}

// NewScorer creates a Scorer with the given parameters.
func NewScorer(params Params) *Scorer {
	return &Scorer{params: params}
}

// Score returns the composite urgency score for the item at the given time.
// The score is additive: overdue pressure, low retrievability, difficulty,
// lapse history, a bonus for never-seen items, and an uncertainty term that
// keeps uncertain items in rotation.
func (sc *Scorer) Score(state ItemState, now time.Time) float64 {
	score := 0.0

	if !now.Before(state.NextDueAt) {
		overdueDays := now.Sub(state.NextDueAt).Hours() / 24.0
		score += 10 + math.Min(overdueDays*2, 20)
	}

	score += (1 - state.RetrievabilityAt(now)) * 5
	score += state.Difficulty * 2
	score += math.Min(float64(state.LapseCount)*1.5, 5)
	if state.Phase == New {
		score += 3
	}
	score += ComputeUncertainty(state) * sc.params.UncertaintyWeight

	return score
}

// Refresh returns a copy of the state with Retrievability, Uncertainty and
// Priority recomputed for the given time.
func (sc *Scorer) Refresh(state ItemState, now time.Time) ItemState {
	s := state
	s.Retrievability = s.RetrievabilityAt(now)
	s.Uncertainty = ComputeUncertainty(s)
	s.Priority = sc.Score(s, now)
	return s
}

// ComputeUncertainty estimates how unsure the model is about an item.
// It decays with repetitions and rises again when accuracy hovers around
// chance. The result is clamped to [0.1, 1].
func ComputeUncertainty(state ItemState) float64 {
	base := math.Exp(-float64(state.RepsTotal) * 0.1)
	consistency := math.Abs(state.Accuracy()-0.5) * 2
	u := base + (1-consistency)*0.3
	return math.Min(math.Max(u, 0.1), 1)
}

package srs

import (
	"math"
	"time"
)

// Response is one graded response to an item.
type Response struct {
	Quality        Quality
	ResponseTimeMs int64
	UsedHint       bool
}

// Updater applies the forgetting-curve recurrence to an item after a
// graded response.
type Updater struct {
	params Params
}

// NewUpdater creates an Updater with the given parameters.
func NewUpdater(params Params) *Updater {
	return &Updater{params: params}
}

// Update applies one response to the item state and returns the updated
// copy. The input state is not mutated. Steps run in a fixed order:
// difficulty, stability and phase transition, retrievability, scheduling,
// counters.
func (u *Updater) Update(state ItemState, resp Response, now time.Time) ItemState {
	s := state
	q := float64(resp.Quality)

	// Difficulty adjustment. w6 is calibrated for the raw 1-10 difficulty
	// scale but is applied to the stored normalized value, which matches the
	// shipped behavior.
	// TODO(product): resolve the difficulty scale mismatch (track raw 1-10
	// internally, or rescale w6).
	s.Difficulty = clamp01(s.Difficulty + u.params.W6*(q-3))

	// Stability and phase transition.
	if state.Phase == New {
		if resp.Quality == Fail {
			s.Stability = u.params.W0 // stays NEW
		} else {
			s.Stability = u.params.W0 + u.params.W1*(q-1)
			s.Phase = Learning
		}
	} else {
		difficultyRaw := 10 * s.Difficulty
		multiplier := 1 + math.Exp(u.params.W8)*
			(11-difficultyRaw)*
			math.Pow(s.Stability, -u.params.W9)*
			(math.Exp(u.params.W10*(1-q))-1)
		multiplier = math.Max(0.1, multiplier)
		s.Stability = math.Max(0.1, s.Stability*multiplier)

		if resp.Quality == Fail {
			s.Phase = Learning
		} else if s.Stability > 1 {
			s.Phase = Review
		}
	}

	// Retrievability, relative to the previous review.
	if state.LastReviewedAt.IsZero() {
		s.Retrievability = 1.0
	} else {
		days := now.Sub(state.LastReviewedAt).Hours() / 24.0
		s.Retrievability = clamp01(math.Exp(-days / s.Stability))
	}

	// Scheduling. The phase set above decides the branch: a failed REVIEW
	// item is back in LEARNING by now and restarts at the first step.
	steps := u.params.LearningSteps
	var interval time.Duration
	switch s.Phase {
	case New, Learning:
		if resp.Quality == Fail {
			interval = steps[0]
		} else {
			idx := state.RepsCorrect
			if idx > len(steps)-1 {
				idx = len(steps) - 1
			}
			interval = steps[idx]
		}
	default:
		days := s.Stability * math.Log(u.params.TargetRetention) / math.Log(0.9)
		switch resp.Quality {
		case Easy:
			days *= u.params.EasyBonus
		case Hard:
			days *= u.params.HardFactor
		}
		interval = time.Duration(days * 24 * float64(time.Hour))
	}
	if interval > u.params.MaximumInterval {
		interval = u.params.MaximumInterval
	}
	s.IntervalMs = interval.Milliseconds()
	s.NextDueAt = now.Add(interval)
	s.LastReviewedAt = now

	// Counters.
	s.RepsTotal++
	if resp.Quality == Fail {
		s.StreakCorrect = 0
		s.LapseCount++
	} else {
		s.RepsCorrect++
		s.StreakCorrect++
	}
	if state.AvgResponseTimeMs == 0 {
		// EMA seeded with the first observation.
		s.AvgResponseTimeMs = float64(resp.ResponseTimeMs)
	} else {
		s.AvgResponseTimeMs = (1-rtSmoothing)*state.AvgResponseTimeMs + rtSmoothing*float64(resp.ResponseTimeMs)
	}
	if resp.UsedHint {
		s.HintUsedCount++
	}

	return s
}

package srs

import (
	"math"
	"testing"
	"time"
)

var scorerNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// TestScore_FreshItem sums the terms for a just-created item: due bonus 10,
// difficulty 0.3*2, new-item bonus 3, full uncertainty * weight 0.2.
func TestScore_FreshItem(t *testing.T) {
	sc := NewScorer(DefaultParams())
	state := NewItemState("fresh", scorerNow)

	got := sc.Score(state, scorerNow)
	almostEqual(t, got, 13.8, 1e-9, "fresh item score")
}

// TestScore_OverduePressureIsCapped caps the overdue term at 20 on top of the
// base 10.
func TestScore_OverduePressureIsCapped(t *testing.T) {
	sc := NewScorer(DefaultParams())
	base := ItemState{
		ID:        "overdue",
		Phase:     Review,
		RepsTotal: 10,
	}

	oneDay := base
	oneDay.NextDueAt = scorerNow.Add(-24 * time.Hour)
	farGone := base
	farGone.NextDueAt = scorerNow.Add(-20 * 24 * time.Hour)

	d1 := sc.Score(oneDay, scorerNow)
	d20 := sc.Score(farGone, scorerNow)
	if d20 <= d1 {
		t.Errorf("more overdue should score higher: %f <= %f", d20, d1)
	}
	// Both items share every non-overdue term, so the difference isolates the
	// overdue pressure: (10+20) - (10+2).
	almostEqual(t, d20-d1, 18, 1e-9, "overdue delta")
}

// TestScore_NotDueHasNoOverdueTerm keeps future-due items below the due floor.
func TestScore_NotDueHasNoOverdueTerm(t *testing.T) {
	sc := NewScorer(DefaultParams())
	state := ItemState{
		ID:        "later",
		Phase:     Review,
		NextDueAt: scorerNow.Add(time.Hour),
	}

	if got := sc.Score(state, scorerNow); got >= 10 {
		t.Errorf("not-due item score: got %f, want < 10", got)
	}
}

func TestComputeUncertainty(t *testing.T) {
	tests := []struct {
		name  string
		state ItemState
		want  float64
	}{
		{"never seen", ItemState{}, 1.0},
		{"chance-level accuracy", ItemState{RepsTotal: 10, RepsCorrect: 5}, math.Exp(-1) + 0.3},
		{"well known", ItemState{RepsTotal: 100, RepsCorrect: 100}, 0.1}, // clamped up from ~0
	}
	for _, tt := range tests {
		got := ComputeUncertainty(tt.state)
		almostEqual(t, got, tt.want, 1e-9, tt.name)
	}
}

func TestRefresh(t *testing.T) {
	sc := NewScorer(DefaultParams())
	state := ItemState{
		ID:             "refresh",
		Phase:          Review,
		Stability:      2,
		RepsTotal:      4,
		RepsCorrect:    2,
		LastReviewedAt: scorerNow.Add(-48 * time.Hour),
		NextDueAt:      scorerNow.Add(-time.Hour),
	}

	got := sc.Refresh(state, scorerNow)

	almostEqual(t, got.Retrievability, math.Exp(-1), 1e-9, "retrievability") // 2 days / stability 2
	almostEqual(t, got.Uncertainty, ComputeUncertainty(state), 1e-9, "uncertainty")
	almostEqual(t, got.Priority, sc.Score(got, scorerNow), 1e-9, "priority")
	if state.Priority != 0 {
		t.Error("Refresh mutated its input")
	}
}

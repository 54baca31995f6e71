package srs

import (
	"math"
	"testing"
	"time"
)

func TestNewItemState_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s := NewItemState("photosynthesis", now)

	if s.ID != "photosynthesis" {
		t.Errorf("id: got %q", s.ID)
	}
	if s.Phase != New {
		t.Errorf("phase: got %v, want NEW", s.Phase)
	}
	if s.Stability != 0 {
		t.Errorf("stability: got %f, want 0", s.Stability)
	}
	if s.Difficulty != 0.3 {
		t.Errorf("difficulty: got %f, want 0.3", s.Difficulty)
	}
	if s.Retrievability != 1.0 {
		t.Errorf("retrievability: got %f, want 1.0", s.Retrievability)
	}
	if s.Uncertainty != 1.0 {
		t.Errorf("uncertainty: got %f, want 1.0", s.Uncertainty)
	}
	if !s.NextDueAt.Equal(now) {
		t.Errorf("next due: got %v, want creation time (immediately due)", s.NextDueAt)
	}
	if !s.LastReviewedAt.IsZero() {
		t.Errorf("last reviewed: got %v, want zero", s.LastReviewedAt)
	}
}

func TestRetrievabilityAt(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	never := ItemState{Stability: 5}
	if got := never.RetrievabilityAt(now); got != 1.0 {
		t.Errorf("never reviewed: got %f, want 1.0", got)
	}

	zeroStability := ItemState{LastReviewedAt: now.Add(-24 * time.Hour)}
	if got := zeroStability.RetrievabilityAt(now); got != 1.0 {
		t.Errorf("zero stability: got %f, want 1.0", got)
	}

	reviewed := ItemState{Stability: 2, LastReviewedAt: now.Add(-48 * time.Hour)}
	want := math.Exp(-1) // 2 days elapsed / stability 2
	if got := reviewed.RetrievabilityAt(now); math.Abs(got-want) > 1e-9 {
		t.Errorf("reviewed: got %f, want %f", got, want)
	}
}

func TestAccuracy(t *testing.T) {
	if got := (ItemState{}).Accuracy(); got != 0 {
		t.Errorf("no reviews: got %f, want 0", got)
	}
	s := ItemState{RepsTotal: 4, RepsCorrect: 3}
	if got := s.Accuracy(); got != 0.75 {
		t.Errorf("3/4: got %f, want 0.75", got)
	}
}

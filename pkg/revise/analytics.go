package revise

import (
	"context"
	"fmt"

	"github.com/pmarkee/revise/pkg/srs"
)

// Analytics summarizes the learning state across all tracked items.
type Analytics struct {
	TotalItems    int `json:"totalItems"`
	NewCount      int `json:"newCount"`
	LearningCount int `json:"learningCount"`
	ReviewCount   int `json:"reviewCount"`
	// MasteredCount is the number of items with retrievability above 0.9
	// and a correct streak of at least 3.
	MasteredCount int `json:"masteredCount"`
	// AverageAccuracy is the mean per-item accuracy over items with at
	// least one review.
	AverageAccuracy   float64 `json:"averageAccuracy"`
	TotalReviews      int     `json:"totalReviews"`
	AverageStability  float64 `json:"averageStability"`
	AverageDifficulty float64 `json:"averageDifficulty"`
	SessionsCount     int     `json:"sessionsCount"`
	// RollingSessionAccuracy is an EMA (smoothing 0.1) over closed-session
	// accuracies.
	RollingSessionAccuracy float64 `json:"rollingSessionAccuracy"`
}

// Analytics computes the summary at the current time and refreshes the
// per-phase item gauges.
func (e *Engine) Analytics(ctx context.Context) (Analytics, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	states, err := e.store.List(ctx)
	if err != nil {
		e.metrics.RecordError(ctx, "analytics", errorType(err))
		return Analytics{}, fmt.Errorf("analytics: %w", err)
	}

	a := Analytics{
		TotalItems:    len(states),
		SessionsCount: e.sessionsCount,
	}
	a.RollingSessionAccuracy = e.rollingAccuracy

	var accuracySum float64
	var reviewedItems int
	for _, s := range states {
		switch s.Phase {
		case srs.New:
			a.NewCount++
		case srs.Learning:
			a.LearningCount++
		case srs.Review:
			a.ReviewCount++
		}
		if s.RetrievabilityAt(now) > 0.9 && s.StreakCorrect >= 3 {
			a.MasteredCount++
		}
		if s.RepsTotal > 0 {
			accuracySum += s.Accuracy()
			reviewedItems++
		}
		a.TotalReviews += s.RepsTotal
		a.AverageStability += s.Stability
		a.AverageDifficulty += s.Difficulty
	}
	if reviewedItems > 0 {
		a.AverageAccuracy = accuracySum / float64(reviewedItems)
	}
	if len(states) > 0 {
		a.AverageStability /= float64(len(states))
		a.AverageDifficulty /= float64(len(states))
	}

	e.metrics.SetPhaseCount(ctx, srs.New.String(), int64(a.NewCount))
	e.metrics.SetPhaseCount(ctx, srs.Learning.String(), int64(a.LearningCount))
	e.metrics.SetPhaseCount(ctx, srs.Review.String(), int64(a.ReviewCount))

	return a, nil
}

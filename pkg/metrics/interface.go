package metrics

import "context"

// Collector is the interface for metrics collection.
// Implementations include the Prometheus-backed collector and the no-op
// collector (default when metrics are disabled).
type Collector interface {
	RecordReview(ctx context.Context, quality string, status string, durationMs int64)
	RecordSelection(ctx context.Context, requested int, selected int)
	RecordError(ctx context.Context, operation string, errorType string)
	SetPhaseCount(ctx context.Context, phase string, count int64)
}

//go:build !metrics

package metrics

import "context"

// NoopCollector is a no-op implementation when metrics are disabled.
// This file is only compiled when the 'metrics' build tag is NOT present.
type NoopCollector struct{}

// NewNoopCollector creates a no-op collector
func NewNoopCollector() *NoopCollector {
	return &NoopCollector{}
}

// RecordReview does nothing when metrics are disabled
func (n *NoopCollector) RecordReview(ctx context.Context, quality string, status string, durationMs int64) {
}

// RecordSelection does nothing when metrics are disabled
func (n *NoopCollector) RecordSelection(ctx context.Context, requested int, selected int) {
}

// RecordError does nothing when metrics are disabled
func (n *NoopCollector) RecordError(ctx context.Context, operation string, errorType string) {
}

// SetPhaseCount does nothing when metrics are disabled
func (n *NoopCollector) SetPhaseCount(ctx context.Context, phase string, count int64) {
}

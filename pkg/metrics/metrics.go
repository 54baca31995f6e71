package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector provides Prometheus metrics collection for scheduler
// operations.
type MetricsCollector struct {
	reviewsTotal    *prometheus.CounterVec
	reviewDuration  *prometheus.HistogramVec
	selectionsTotal prometheus.Counter
	selectionSize   prometheus.Histogram
	errorsTotal     *prometheus.CounterVec
	itemsByPhase    *prometheus.GaugeVec
	registry        *prometheus.Registry
}

// NewCollector creates a new Prometheus metrics collector
func NewCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()

	reviewsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "revise_reviews_total",
			Help: "Total number of recorded responses by quality grade and status",
		},
		[]string{"quality", "status"},
	)

	reviewDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "revise_review_duration_seconds",
			Help:    "Duration of response processing by quality grade",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"quality"},
	)

	selectionsTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "revise_selections_total",
			Help: "Total number of session selections performed",
		},
	)

	selectionSize := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "revise_selection_size",
			Help:    "Number of items returned per session selection",
			Buckets: []float64{0, 1, 5, 10, 15, 20, 30, 50, 100},
		},
	)

	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "revise_errors_total",
			Help: "Total number of errors by operation and error type",
		},
		[]string{"operation", "error_type"},
	)

	itemsByPhase := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "revise_items",
			Help: "Current count of tracked items by lifecycle phase",
		},
		[]string{"phase"},
	)

	registry.MustRegister(reviewsTotal)
	registry.MustRegister(reviewDuration)
	registry.MustRegister(selectionsTotal)
	registry.MustRegister(selectionSize)
	registry.MustRegister(errorsTotal)
	registry.MustRegister(itemsByPhase)

	return &MetricsCollector{
		reviewsTotal:    reviewsTotal,
		reviewDuration:  reviewDuration,
		selectionsTotal: selectionsTotal,
		selectionSize:   selectionSize,
		errorsTotal:     errorsTotal,
		itemsByPhase:    itemsByPhase,
		registry:        registry,
	}
}

// RecordReview records the completion of one response update
func (m *MetricsCollector) RecordReview(ctx context.Context, quality string, status string, durationMs int64) {
	m.reviewsTotal.WithLabelValues(quality, status).Inc()
	m.reviewDuration.WithLabelValues(quality).Observe(float64(durationMs) / 1000.0)
}

// RecordSelection records one session selection
func (m *MetricsCollector) RecordSelection(ctx context.Context, requested int, selected int) {
	m.selectionsTotal.Inc()
	m.selectionSize.Observe(float64(selected))
}

// RecordError records an error occurrence
func (m *MetricsCollector) RecordError(ctx context.Context, operation string, errorType string) {
	m.errorsTotal.WithLabelValues(operation, errorType).Inc()
}

// SetPhaseCount sets the current item count for a lifecycle phase
func (m *MetricsCollector) SetPhaseCount(ctx context.Context, phase string, count int64) {
	m.itemsByPhase.WithLabelValues(phase).Set(float64(count))
}

// Registry returns the Prometheus registry for HTTP exposure
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

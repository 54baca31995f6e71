package audit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pmarkee/revise/pkg/srs"
)

// ErrUnknownCorrelation is returned when RecordAfter is called with a
// correlation ID that has no pending entry.
var ErrUnknownCorrelation = errors.New("audit: unknown correlation id")

// Sink is the persistence boundary for audit entries. Satisfied by the
// store implementations.
type Sink interface {
	AppendAudit(ctx context.Context, entry Entry) error
	CompleteAudit(ctx context.Context, correlationID string, after srs.ItemState, deltas Deltas) error
}

// Logger records response updates into a Sink. Each update is correlated by
// an explicit ID returned from RecordBefore, so interleaved recording of
// different items cannot cross wires.
type Logger struct {
	mu      sync.Mutex
	sink    Sink
	pending map[string]srs.ItemState // correlation id -> before snapshot
}

// NewLogger creates a Logger writing to the given sink.
func NewLogger(sink Sink) *Logger {
	return &Logger{
		sink:    sink,
		pending: make(map[string]srs.ItemState),
	}
}

// RecordBefore appends a new entry with the pre-update snapshot and returns
// the correlation ID to pass to RecordAfter.
func (l *Logger) RecordBefore(ctx context.Context, itemID string, before srs.ItemState, quality srs.Quality, responseTimeMs int64, usedHint bool, now time.Time) (string, error) {
	id := uuid.NewString()
	entry := Entry{
		CorrelationID:  id,
		Timestamp:      now,
		ItemID:         itemID,
		Quality:        quality,
		ResponseTimeMs: responseTimeMs,
		UsedHint:       usedHint,
		Before:         before,
	}
	if err := l.sink.AppendAudit(ctx, entry); err != nil {
		return "", err
	}

	l.mu.Lock()
	l.pending[id] = before
	l.mu.Unlock()
	return id, nil
}

// RecordAfter attaches the post-update snapshot and the computed deltas to
// the entry identified by correlationID.
func (l *Logger) RecordAfter(ctx context.Context, correlationID string, after srs.ItemState) error {
	l.mu.Lock()
	before, ok := l.pending[correlationID]
	if ok {
		delete(l.pending, correlationID)
	}
	l.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCorrelation, correlationID)
	}

	deltas := Deltas{
		StabilityChange:      after.Stability - before.Stability,
		DifficultyChange:     after.Difficulty - before.Difficulty,
		RetrievabilityChange: after.Retrievability - before.Retrievability,
	}
	return l.sink.CompleteAudit(ctx, correlationID, after, deltas)
}

// Reset drops any pending correlations, e.g. after the underlying log has
// been cleared.
func (l *Logger) Reset() {
	l.mu.Lock()
	l.pending = make(map[string]srs.ItemState)
	l.mu.Unlock()
}

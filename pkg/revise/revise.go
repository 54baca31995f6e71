// Package revise provides an adaptive spaced-repetition scheduler. It
// tracks per-item learning state, grades each response, updates a
// forgetting-curve model, ranks items by retrieval priority and selects the
// next session, with an append-only audit log for offline analysis.
package revise

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/pmarkee/revise/pkg/audit"
	"github.com/pmarkee/revise/pkg/metrics"
	"github.com/pmarkee/revise/pkg/srs"
	"github.com/pmarkee/revise/pkg/store"
)

// Config holds configuration for the Engine. Zero-value fields get
// sensible defaults in New.
type Config struct {
	// Params are the scheduling weights; zero-value fields are filled with
	// the reference values.
	Params srs.Params

	// Store persists item state and the audit log (default: in-memory).
	Store store.Store

	// Metrics receives operational metrics (default: a collector with its
	// own registry).
	Metrics metrics.Collector

	// Rand drives exploratory selection. Inject a seeded source for
	// reproducible behavior; nil gets a time-seeded one.
	Rand *rand.Rand

	// Now supplies the current time (default time.Now). Tests inject a
	// fixed clock.
	Now func() time.Time
}

// Engine is the main entry point of the scheduler.
//
// Each recorded response runs classify, audit-before, model update, save
// and audit-after as one uninterrupted unit under the engine's mutex, so
// concurrent callers are serialized rather than corrupting the log.
type Engine struct {
	mu       sync.Mutex
	params   srs.Params
	store    store.Store
	logger   *audit.Logger
	updater  *srs.Updater
	scorer   *srs.Scorer
	selector *srs.Selector
	metrics  metrics.Collector
	now      func() time.Time

	session         *Session
	sessionsCount   int
	rollingAccuracy float64
}

// New creates an Engine from the given config.
func New(cfg Config) (*Engine, error) {
	params := cfg.Params
	params.ApplyDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	st := cfg.Store
	if st == nil {
		st = store.NewMemory()
	}

	collector := cfg.Metrics
	if collector == nil {
		collector = metrics.NewCollector()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Engine{
		params:   params,
		store:    st,
		logger:   audit.NewLogger(st),
		updater:  srs.NewUpdater(params),
		scorer:   srs.NewScorer(params),
		selector: srs.NewSelector(params, cfg.Rand),
		metrics:  collector,
		now:      now,
	}, nil
}

// Initialize lazily creates state for each vocabulary item. Entries with an
// empty id are skipped rather than aborting the batch. Returns the number
// of accepted items.
func (e *Engine) Initialize(ctx context.Context, vocabulary []VocabularyItem) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	accepted := 0
	for _, item := range vocabulary {
		if item.ID == "" {
			continue
		}
		if _, err := e.store.GetOrCreate(ctx, item.ID); err != nil {
			e.metrics.RecordError(ctx, "initialize", errorType(err))
			return accepted, fmt.Errorf("initialize item %q: %w", item.ID, err)
		}
		accepted++
	}
	return accepted, nil
}

// StartSession selects up to sessionLength items and opens a new session.
// A non-positive sessionLength yields a session with no items.
func (e *Engine) StartSession(ctx context.Context, sessionLength int) (Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	states, err := e.store.List(ctx)
	if err != nil {
		e.metrics.RecordError(ctx, "start_session", errorType(err))
		return Session{}, fmt.Errorf("start session: %w", err)
	}

	chosen := e.selector.Select(states, sessionLength, now)
	ids := make([]string, len(chosen))
	for i, c := range chosen {
		ids[i] = c.ID
		// Persist the refreshed priority so exports reflect the ranking
		// the selection actually used.
		if err := e.store.Save(ctx, c); err != nil {
			e.metrics.RecordError(ctx, "start_session", errorType(err))
			return Session{}, fmt.Errorf("start session: %w", err)
		}
	}

	session := newSession(ids, now)
	e.session = &session
	e.metrics.RecordSelection(ctx, sessionLength, len(ids))
	return session, nil
}

// RecordResponse grades and applies one response for an item, recording the
// full before/after snapshot in the audit log.
func (e *Engine) RecordResponse(ctx context.Context, itemID string, isCorrect bool, responseTimeMs int64, usedHint bool) (ResponseSummary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	started := time.Now()
	now := e.now()

	prior, err := e.store.GetOrCreate(ctx, itemID)
	if err != nil {
		e.metrics.RecordError(ctx, "record_response", errorType(err))
		return ResponseSummary{}, fmt.Errorf("record response for %q: %w", itemID, err)
	}

	quality := srs.Classify(isCorrect, responseTimeMs, usedHint, prior)

	correlationID, err := e.logger.RecordBefore(ctx, itemID, prior, quality, responseTimeMs, usedHint, now)
	if err != nil {
		e.metrics.RecordError(ctx, "record_response", errorType(err))
		return ResponseSummary{}, fmt.Errorf("record response for %q: %w", itemID, err)
	}

	updated := e.updater.Update(prior, srs.Response{
		Quality:        quality,
		ResponseTimeMs: responseTimeMs,
		UsedHint:       usedHint,
	}, now)
	updated = e.scorer.Refresh(updated, now)

	if err := e.store.Save(ctx, updated); err != nil {
		e.metrics.RecordError(ctx, "record_response", errorType(err))
		return ResponseSummary{}, fmt.Errorf("record response for %q: %w", itemID, err)
	}
	if err := e.logger.RecordAfter(ctx, correlationID, updated); err != nil {
		e.metrics.RecordError(ctx, "record_response", errorType(err))
		return ResponseSummary{}, fmt.Errorf("record response for %q: %w", itemID, err)
	}

	if e.session != nil {
		e.session.recordResponse(isCorrect)
	}
	e.metrics.RecordReview(ctx, quality.String(), "success", time.Since(started).Milliseconds())

	return ResponseSummary{
		ItemID:        itemID,
		Quality:       quality,
		CorrelationID: correlationID,
		State:         updated,
	}, nil
}

// EndSession closes the active session, folds its accuracy into the
// rolling session accuracy and returns the closed session.
func (e *Engine) EndSession(ctx context.Context) (Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return Session{}, ErrNoActiveSession
	}

	session := *e.session
	session.close(e.now())
	e.session = nil

	if e.sessionsCount == 0 {
		e.rollingAccuracy = session.Accuracy
	} else {
		e.rollingAccuracy = 0.9*e.rollingAccuracy + 0.1*session.Accuracy
	}
	e.sessionsCount++

	return session, nil
}

// ItemStates returns all tracked item states, for debugging and
// visualization.
func (e *Engine) ItemStates(ctx context.Context) ([]srs.ItemState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.List(ctx)
}

// ExportCSV serializes all completed audit entries as CSV.
func (e *Engine) ExportCSV(ctx context.Context) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries, err := e.store.AuditEntries(ctx)
	if err != nil {
		e.metrics.RecordError(ctx, "export", errorType(err))
		return nil, fmt.Errorf("export: %w", err)
	}
	return audit.ExportCSV(entries)
}

// ExportJSON serializes all completed audit entries as JSON.
func (e *Engine) ExportJSON(ctx context.Context) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries, err := e.store.AuditEntries(ctx)
	if err != nil {
		e.metrics.RecordError(ctx, "export", errorType(err))
		return nil, fmt.Errorf("export: %w", err)
	}
	return audit.ExportJSON(entries)
}

// ResetAll irreversibly clears all item state, the audit log and session
// history. Callers are expected to confirm before calling.
func (e *Engine) ResetAll(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.ResetAll(ctx); err != nil {
		e.metrics.RecordError(ctx, "reset", errorType(err))
		return fmt.Errorf("reset: %w", err)
	}
	e.logger.Reset()
	e.session = nil
	e.sessionsCount = 0
	e.rollingAccuracy = 0
	return nil
}

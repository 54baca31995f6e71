// Package store persists per-item learning state and the append-only audit
// log. Implementations: an in-memory store for tests and single-process use,
// and a SQLite-backed store.
package store

import (
	"context"
	"errors"

	"github.com/pmarkee/revise/pkg/audit"
	"github.com/pmarkee/revise/pkg/srs"
)

// ErrPersistence wraps every storage I/O failure. The scheduler core does
// not retry; callers decide.
var ErrPersistence = errors.New("store: persistence failure")

// Store is the persistence boundary of the scheduler: a map from item id to
// state plus the append-only audit log. Both live in one store so ResetAll
// can clear them atomically.
type Store interface {
	// GetOrCreate returns the state for the item, lazily creating the
	// default state on first lookup. It only fails on persistence errors,
	// never on a missing item.
	GetOrCreate(ctx context.Context, id string) (srs.ItemState, error)

	// Save upserts the item state. Idempotent.
	Save(ctx context.Context, state srs.ItemState) error

	// List returns all known item states in creation order.
	List(ctx context.Context) ([]srs.ItemState, error)

	// AppendAudit appends a new audit entry.
	AppendAudit(ctx context.Context, entry audit.Entry) error

	// CompleteAudit attaches the after snapshot and deltas to the entry with
	// the given correlation id.
	CompleteAudit(ctx context.Context, correlationID string, after srs.ItemState, deltas audit.Deltas) error

	// AuditEntries returns all audit entries in append order.
	AuditEntries(ctx context.Context) ([]audit.Entry, error)

	// ResetAll irreversibly clears all item state and the audit log in one
	// atomic operation.
	ResetAll(ctx context.Context) error
}

// Compile-time interface checks.
var (
	_ Store      = (*Memory)(nil)
	_ Store      = (*SQLite)(nil)
	_ audit.Sink = (*Memory)(nil)
	_ audit.Sink = (*SQLite)(nil)
)

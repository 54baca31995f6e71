package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pmarkee/revise/pkg/audit"
	"github.com/pmarkee/revise/pkg/srs"
)

// Memory is an in-memory Store. It is the substitutable fake the store
// abstraction exists for, and is also good enough for single-process use
// where persistence across restarts is not needed.
type Memory struct {
	mu      sync.Mutex
	items   map[string]srs.ItemState
	order   []string // creation order of item ids
	entries []audit.Entry
	byCorr  map[string]int // correlation id -> index into entries

	// Now supplies the creation timestamp for lazily created items.
	// Defaults to time.Now; tests may replace it.
	Now func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		items:  make(map[string]srs.ItemState),
		byCorr: make(map[string]int),
		Now:    time.Now,
	}
}

// GetOrCreate returns the stored state or lazily creates the default.
func (m *Memory) GetOrCreate(ctx context.Context, id string) (srs.ItemState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.items[id]; ok {
		return s, nil
	}
	s := srs.NewItemState(id, m.Now())
	m.items[id] = s
	m.order = append(m.order, id)
	return s, nil
}

// Save upserts the item state.
func (m *Memory) Save(ctx context.Context, state srs.ItemState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[state.ID]; !ok {
		m.order = append(m.order, state.ID)
	}
	m.items[state.ID] = state
	return nil
}

// List returns all item states in creation order.
func (m *Memory) List(ctx context.Context) ([]srs.ItemState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]srs.ItemState, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out, nil
}

// AppendAudit appends a new audit entry.
func (m *Memory) AppendAudit(ctx context.Context, entry audit.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.byCorr[entry.CorrelationID] = len(m.entries)
	m.entries = append(m.entries, entry)
	return nil
}

// CompleteAudit attaches the after snapshot and deltas to a pending entry.
func (m *Memory) CompleteAudit(ctx context.Context, correlationID string, after srs.ItemState, deltas audit.Deltas) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.byCorr[correlationID]
	if !ok {
		return fmt.Errorf("%w: no audit entry for correlation id %s", ErrPersistence, correlationID)
	}
	a := after
	d := deltas
	m.entries[idx].After = &a
	m.entries[idx].Deltas = &d
	return nil
}

// AuditEntries returns a copy of the log in append order.
func (m *Memory) AuditEntries(ctx context.Context) ([]audit.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]audit.Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

// ResetAll clears all item state and the audit log.
func (m *Memory) ResetAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]srs.ItemState)
	m.order = nil
	m.entries = nil
	m.byCorr = make(map[string]int)
	return nil
}

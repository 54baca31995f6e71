package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmarkee/revise/pkg/audit"
	"github.com/pmarkee/revise/pkg/srs"
)

func TestMemory_GetOrCreateDefaults(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.Now = func() time.Time { return now }
	ctx := context.Background()

	s, err := m.GetOrCreate(ctx, "photosynthesis")
	require.NoError(t, err)

	assert.Equal(t, "photosynthesis", s.ID)
	assert.Equal(t, srs.New, s.Phase)
	assert.Equal(t, 0.0, s.Stability)
	assert.Equal(t, 0.3, s.Difficulty)
	assert.Equal(t, 1.0, s.Retrievability)
	assert.True(t, s.NextDueAt.Equal(now), "new item is immediately due")
	assert.True(t, s.LastReviewedAt.IsZero())

	// Second call returns the same state, not a fresh default.
	again, err := m.GetOrCreate(ctx, "photosynthesis")
	require.NoError(t, err)
	assert.Equal(t, s, again)
}

func TestMemory_SaveAndList(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	now := time.Now()

	first, err := m.GetOrCreate(ctx, "first")
	require.NoError(t, err)
	_, err = m.GetOrCreate(ctx, "second")
	require.NoError(t, err)

	first.Phase = srs.Learning
	first.Stability = 1.6
	first.RepsTotal = 2
	first.LastReviewedAt = now
	require.NoError(t, m.Save(ctx, first))

	states, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, "first", states[0].ID, "creation order preserved")
	assert.Equal(t, srs.Learning, states[0].Phase)
	assert.Equal(t, 1.6, states[0].Stability)
	assert.Equal(t, "second", states[1].ID)
}

func TestMemory_SaveUnknownItemCreatesIt(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	state := srs.NewItemState("direct", time.Now())
	require.NoError(t, m.Save(ctx, state))

	states, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "direct", states[0].ID)
}

func TestMemory_AuditLifecycle(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	now := time.Now()

	before := srs.NewItemState("osmosis", now)
	entry := audit.Entry{
		CorrelationID:  "corr-1",
		Timestamp:      now,
		ItemID:         "osmosis",
		Quality:        srs.Good,
		ResponseTimeMs: 1200,
		Before:         before,
	}
	require.NoError(t, m.AppendAudit(ctx, entry))

	entries, err := m.AuditEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Completed())

	after := before
	after.Stability = 1.0
	deltas := audit.Deltas{StabilityChange: 1.0}
	require.NoError(t, m.CompleteAudit(ctx, "corr-1", after, deltas))

	entries, err = m.AuditEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, entries[0].Completed())
	assert.Equal(t, 1.0, entries[0].After.Stability)
	assert.Equal(t, 1.0, entries[0].Deltas.StabilityChange)
}

func TestMemory_CompleteAuditUnknownCorrelation(t *testing.T) {
	m := NewMemory()

	err := m.CompleteAudit(context.Background(), "missing", srs.ItemState{}, audit.Deltas{})
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestMemory_ResetAll(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.Now = func() time.Time { return now }
	ctx := context.Background()

	reviewed, err := m.GetOrCreate(ctx, "gravity")
	require.NoError(t, err)
	reviewed.Phase = srs.Review
	reviewed.Stability = 10
	reviewed.RepsTotal = 5
	require.NoError(t, m.Save(ctx, reviewed))
	require.NoError(t, m.AppendAudit(ctx, audit.Entry{CorrelationID: "c", ItemID: "gravity", Before: reviewed}))

	require.NoError(t, m.ResetAll(ctx))

	states, err := m.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, states)
	entries, err := m.AuditEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// The next lookup sees the pristine default again.
	fresh, err := m.GetOrCreate(ctx, "gravity")
	require.NoError(t, err)
	assert.Equal(t, srs.New, fresh.Phase)
	assert.Equal(t, 0.0, fresh.Stability)
	assert.Equal(t, 0, fresh.RepsTotal)
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/pmarkee/revise/pkg/audit"
	"github.com/pmarkee/revise/pkg/srs"
)

// SQLite is a Store backed by a SQLite database. The path can be a file or
// ":memory:" for tests.
type SQLite struct {
	db *sqlx.DB

	// Now supplies the creation timestamp for lazily created items.
	Now func() time.Time
}

// NewSQLite opens (or creates) the database at path and initializes the
// schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", ErrPersistence, err)
	}
	// SQLite allows a single writer; serialize through one connection.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db, Now: time.Now}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS items (
		id TEXT PRIMARY KEY,
		phase TEXT NOT NULL,
		stability REAL NOT NULL DEFAULT 0,
		difficulty REAL NOT NULL DEFAULT 0,
		retrievability REAL NOT NULL DEFAULT 1,
		reps_total INTEGER NOT NULL DEFAULT 0,
		reps_correct INTEGER NOT NULL DEFAULT 0,
		streak_correct INTEGER NOT NULL DEFAULT 0,
		lapse_count INTEGER NOT NULL DEFAULT 0,
		avg_response_time_ms REAL NOT NULL DEFAULT 0,
		hint_used_count INTEGER NOT NULL DEFAULT 0,
		created_at_ms INTEGER NOT NULL,
		last_reviewed_at_ms INTEGER NOT NULL DEFAULT 0,
		next_due_at_ms INTEGER NOT NULL,
		interval_ms INTEGER NOT NULL DEFAULT 0,
		uncertainty REAL NOT NULL DEFAULT 1,
		priority REAL NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_items_next_due ON items(next_due_at_ms);

	CREATE TABLE IF NOT EXISTS audit_entries (
		correlation_id TEXT PRIMARY KEY,
		ts_ms INTEGER NOT NULL,
		item_id TEXT NOT NULL,
		quality TEXT NOT NULL,
		response_time_ms INTEGER NOT NULL,
		used_hint INTEGER NOT NULL DEFAULT 0,
		before_json TEXT NOT NULL,
		after_json TEXT,
		stability_change REAL,
		difficulty_change REAL,
		retrievability_change REAL
	);

	CREATE INDEX IF NOT EXISTS idx_audit_item ON audit_entries(item_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("%w: initialize schema: %v", ErrPersistence, err)
	}
	return nil
}

// itemRow is the flat row shape of the items table. Timestamps are stored
// as Unix milliseconds; zero means unset.
type itemRow struct {
	ID                string    `db:"id"`
	Phase             srs.Phase `db:"phase"`
	Stability         float64   `db:"stability"`
	Difficulty        float64   `db:"difficulty"`
	Retrievability    float64   `db:"retrievability"`
	RepsTotal         int       `db:"reps_total"`
	RepsCorrect       int       `db:"reps_correct"`
	StreakCorrect     int       `db:"streak_correct"`
	LapseCount        int       `db:"lapse_count"`
	AvgResponseTimeMs float64   `db:"avg_response_time_ms"`
	HintUsedCount     int       `db:"hint_used_count"`
	CreatedAtMs       int64     `db:"created_at_ms"`
	LastReviewedAtMs  int64     `db:"last_reviewed_at_ms"`
	NextDueAtMs       int64     `db:"next_due_at_ms"`
	IntervalMs        int64     `db:"interval_ms"`
	Uncertainty       float64   `db:"uncertainty"`
	Priority          float64   `db:"priority"`
}

func toRow(s srs.ItemState) itemRow {
	return itemRow{
		ID:                s.ID,
		Phase:             s.Phase,
		Stability:         s.Stability,
		Difficulty:        s.Difficulty,
		Retrievability:    s.Retrievability,
		RepsTotal:         s.RepsTotal,
		RepsCorrect:       s.RepsCorrect,
		StreakCorrect:     s.StreakCorrect,
		LapseCount:        s.LapseCount,
		AvgResponseTimeMs: s.AvgResponseTimeMs,
		HintUsedCount:     s.HintUsedCount,
		CreatedAtMs:       timeToMs(s.CreatedAt),
		LastReviewedAtMs:  timeToMs(s.LastReviewedAt),
		NextDueAtMs:       timeToMs(s.NextDueAt),
		IntervalMs:        s.IntervalMs,
		Uncertainty:       s.Uncertainty,
		Priority:          s.Priority,
	}
}

func (r itemRow) toState() srs.ItemState {
	return srs.ItemState{
		ID:                r.ID,
		Phase:             r.Phase,
		Stability:         r.Stability,
		Difficulty:        r.Difficulty,
		Retrievability:    r.Retrievability,
		RepsTotal:         r.RepsTotal,
		RepsCorrect:       r.RepsCorrect,
		StreakCorrect:     r.StreakCorrect,
		LapseCount:        r.LapseCount,
		AvgResponseTimeMs: r.AvgResponseTimeMs,
		HintUsedCount:     r.HintUsedCount,
		CreatedAt:         msToTime(r.CreatedAtMs),
		LastReviewedAt:    msToTime(r.LastReviewedAtMs),
		NextDueAt:         msToTime(r.NextDueAtMs),
		IntervalMs:        r.IntervalMs,
		Uncertainty:       r.Uncertainty,
		Priority:          r.Priority,
	}
}

func timeToMs(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func msToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

const upsertItem = `
	INSERT OR REPLACE INTO items (
		id, phase, stability, difficulty, retrievability,
		reps_total, reps_correct, streak_correct, lapse_count,
		avg_response_time_ms, hint_used_count,
		created_at_ms, last_reviewed_at_ms, next_due_at_ms, interval_ms,
		uncertainty, priority
	) VALUES (
		:id, :phase, :stability, :difficulty, :retrievability,
		:reps_total, :reps_correct, :streak_correct, :lapse_count,
		:avg_response_time_ms, :hint_used_count,
		:created_at_ms, :last_reviewed_at_ms, :next_due_at_ms, :interval_ms,
		:uncertainty, :priority
	)`

// GetOrCreate returns the stored state or lazily creates the default.
func (s *SQLite) GetOrCreate(ctx context.Context, id string) (srs.ItemState, error) {
	var row itemRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM items WHERE id = ?`, id)
	if err == nil {
		return row.toState(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return srs.ItemState{}, fmt.Errorf("%w: load item %s: %v", ErrPersistence, id, err)
	}

	state := srs.NewItemState(id, s.Now())
	if _, err := s.db.NamedExecContext(ctx, upsertItem, toRow(state)); err != nil {
		return srs.ItemState{}, fmt.Errorf("%w: create item %s: %v", ErrPersistence, id, err)
	}
	return state, nil
}

// Save upserts the item state.
func (s *SQLite) Save(ctx context.Context, state srs.ItemState) error {
	if _, err := s.db.NamedExecContext(ctx, upsertItem, toRow(state)); err != nil {
		return fmt.Errorf("%w: save item %s: %v", ErrPersistence, state.ID, err)
	}
	return nil
}

// List returns all item states in creation order.
func (s *SQLite) List(ctx context.Context) ([]srs.ItemState, error) {
	var rows []itemRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM items ORDER BY created_at_ms, id`); err != nil {
		return nil, fmt.Errorf("%w: list items: %v", ErrPersistence, err)
	}
	out := make([]srs.ItemState, len(rows))
	for i, r := range rows {
		out[i] = r.toState()
	}
	return out, nil
}

// AppendAudit appends a new audit entry.
func (s *SQLite) AppendAudit(ctx context.Context, entry audit.Entry) error {
	beforeJSON, err := json.Marshal(entry.Before)
	if err != nil {
		return fmt.Errorf("%w: encode audit snapshot: %v", ErrPersistence, err)
	}
	quality, err := entry.Quality.MarshalText()
	if err != nil {
		return fmt.Errorf("%w: encode audit quality: %v", ErrPersistence, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_entries (
			correlation_id, ts_ms, item_id, quality,
			response_time_ms, used_hint, before_json
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.CorrelationID, entry.Timestamp.UnixMilli(), entry.ItemID,
		string(quality), entry.ResponseTimeMs, entry.UsedHint, string(beforeJSON),
	)
	if err != nil {
		return fmt.Errorf("%w: append audit entry: %v", ErrPersistence, err)
	}
	return nil
}

// CompleteAudit attaches the after snapshot and deltas to a pending entry.
func (s *SQLite) CompleteAudit(ctx context.Context, correlationID string, after srs.ItemState, deltas audit.Deltas) error {
	afterJSON, err := json.Marshal(after)
	if err != nil {
		return fmt.Errorf("%w: encode audit snapshot: %v", ErrPersistence, err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE audit_entries
		SET after_json = ?, stability_change = ?, difficulty_change = ?, retrievability_change = ?
		WHERE correlation_id = ?`,
		string(afterJSON), deltas.StabilityChange, deltas.DifficultyChange,
		deltas.RetrievabilityChange, correlationID,
	)
	if err != nil {
		return fmt.Errorf("%w: complete audit entry: %v", ErrPersistence, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: complete audit entry: %v", ErrPersistence, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: no audit entry for correlation id %s", ErrPersistence, correlationID)
	}
	return nil
}

// auditRow is the flat row shape of the audit_entries table.
type auditRow struct {
	CorrelationID        string          `db:"correlation_id"`
	TsMs                 int64           `db:"ts_ms"`
	ItemID               string          `db:"item_id"`
	Quality              string          `db:"quality"`
	ResponseTimeMs       int64           `db:"response_time_ms"`
	UsedHint             bool            `db:"used_hint"`
	BeforeJSON           string          `db:"before_json"`
	AfterJSON            sql.NullString  `db:"after_json"`
	StabilityChange      sql.NullFloat64 `db:"stability_change"`
	DifficultyChange     sql.NullFloat64 `db:"difficulty_change"`
	RetrievabilityChange sql.NullFloat64 `db:"retrievability_change"`
}

// AuditEntries returns all audit entries in append order.
func (s *SQLite) AuditEntries(ctx context.Context) ([]audit.Entry, error) {
	var rows []auditRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM audit_entries ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("%w: list audit entries: %v", ErrPersistence, err)
	}

	out := make([]audit.Entry, 0, len(rows))
	for _, r := range rows {
		entry := audit.Entry{
			CorrelationID:  r.CorrelationID,
			Timestamp:      time.UnixMilli(r.TsMs),
			ItemID:         r.ItemID,
			ResponseTimeMs: r.ResponseTimeMs,
			UsedHint:       r.UsedHint,
		}
		if err := entry.Quality.UnmarshalText([]byte(r.Quality)); err != nil {
			return nil, fmt.Errorf("%w: decode audit quality: %v", ErrPersistence, err)
		}
		if err := json.Unmarshal([]byte(r.BeforeJSON), &entry.Before); err != nil {
			return nil, fmt.Errorf("%w: decode audit snapshot: %v", ErrPersistence, err)
		}
		if r.AfterJSON.Valid {
			var after srs.ItemState
			if err := json.Unmarshal([]byte(r.AfterJSON.String), &after); err != nil {
				return nil, fmt.Errorf("%w: decode audit snapshot: %v", ErrPersistence, err)
			}
			entry.After = &after
			entry.Deltas = &audit.Deltas{
				StabilityChange:      r.StabilityChange.Float64,
				DifficultyChange:     r.DifficultyChange.Float64,
				RetrievabilityChange: r.RetrievabilityChange.Float64,
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// ResetAll clears all item state and the audit log in one transaction.
func (s *SQLite) ResetAll(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin reset: %v", ErrPersistence, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("%w: reset items: %v", ErrPersistence, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM audit_entries`); err != nil {
		return fmt.Errorf("%w: reset audit log: %v", ErrPersistence, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit reset: %v", ErrPersistence, err)
	}
	return nil
}

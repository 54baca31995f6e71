// Package audit records before/after snapshots of every scheduler update in
// an append-only log and serializes them for offline analysis.
package audit

import (
	"time"

	"github.com/pmarkee/revise/pkg/srs"
)

// Entry is one recorded response. Before is captured when the response is
// accepted; After and Deltas are attached once the model update completes.
// A completed entry is never mutated again.
type Entry struct {
	// CorrelationID ties the before and after halves of one update together,
	// so recording is safe even if entries for other items land in between.
	CorrelationID  string         `json:"correlationId"`
	Timestamp      time.Time      `json:"timestamp"`
	ItemID         string         `json:"itemId"`
	Quality        srs.Quality    `json:"quality"`
	ResponseTimeMs int64          `json:"responseTimeMs"`
	UsedHint       bool           `json:"usedHint"`
	Before         srs.ItemState  `json:"before"`
	After          *srs.ItemState `json:"after,omitempty"`
	Deltas         *Deltas        `json:"deltas,omitempty"`
}

// Deltas are the per-update changes of the core model values.
type Deltas struct {
	StabilityChange      float64 `json:"stabilityChange"`
	DifficultyChange     float64 `json:"difficultyChange"`
	RetrievabilityChange float64 `json:"retrievabilityChange"`
}

// Completed reports whether the after snapshot has been attached.
func (e Entry) Completed() bool {
	return e.After != nil
}

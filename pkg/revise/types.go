package revise

import (
	"github.com/pmarkee/revise/pkg/audit"
	"github.com/pmarkee/revise/pkg/srs"
)

// Type re-exports for caller convenience

// Quality is re-exported from the srs package
type Quality = srs.Quality

// Quality constants re-exported from the srs package
const (
	Fail = srs.Fail
	Hard = srs.Hard
	Good = srs.Good
	Easy = srs.Easy
)

// Phase is re-exported from the srs package
type Phase = srs.Phase

// Phase constants re-exported from the srs package. srs.New is not
// re-exported because New is the Engine constructor; use srs.New directly.
const (
	Learning = srs.Learning
	Review   = srs.Review
)

// ItemState is re-exported from the srs package
type ItemState = srs.ItemState

// Params is re-exported from the srs package
type Params = srs.Params

// DefaultParams is re-exported from the srs package
var DefaultParams = srs.DefaultParams

// AuditEntry is re-exported from the audit package
type AuditEntry = audit.Entry

// VocabularyItem is one entry of the external vocabulary. Payload is
// opaque to the scheduler; only the id matters here.
type VocabularyItem struct {
	ID      string `json:"id"`
	Payload string `json:"payload"`
}

// ResponseSummary is returned from RecordResponse.
type ResponseSummary struct {
	ItemID        string        `json:"itemId"`
	Quality       srs.Quality   `json:"quality"`
	CorrelationID string        `json:"correlationId"`
	State         srs.ItemState `json:"state"`
}

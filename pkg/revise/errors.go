package revise

import (
	"errors"

	"github.com/pmarkee/revise/pkg/audit"
	"github.com/pmarkee/revise/pkg/store"
)

// ErrNoActiveSession is returned by EndSession when no session is open.
var ErrNoActiveSession = errors.New("revise: no active session")

// errorType maps an error to a stable label for metrics.
func errorType(err error) string {
	switch {
	case errors.Is(err, store.ErrPersistence):
		return "persistence"
	case errors.Is(err, audit.ErrUnknownCorrelation):
		return "audit"
	default:
		return "unknown"
	}
}

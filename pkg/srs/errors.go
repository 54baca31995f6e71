package srs

import "errors"

// Sentinel errors for the srs package.
// Use errors.Is to check: errors.Is(err, srs.ErrInvalidQuality)
var (
	ErrInvalidQuality    = errors.New("srs: invalid quality grade")
	ErrInvalidPhase      = errors.New("srs: invalid lifecycle phase")
	ErrInvalidParameters = errors.New("srs: parameters out of bounds")
)

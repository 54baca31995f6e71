package srs

import (
	"fmt"
	"time"
)

// Params holds the weights and schedule configuration for the forgetting-curve
// recurrence. Zero-value fields are filled in by ApplyDefaults.
type Params struct {
	// W0 is the stability assigned to a NEW item that fails its first review.
	W0 float64 `json:"w0"`
	// W1 scales the quality bonus for a NEW item's first successful review:
	// stability = W0 + W1*(quality-1).
	W1 float64 `json:"w1"`
	// W6 is the difficulty adjustment weight: difficulty += W6*(quality-3).
	W6 float64 `json:"w6"`
	// W8, W9, W10 shape the stability multiplier for LEARNING/REVIEW items:
	// 1 + e^W8 * (11-D) * S^(-W9) * (e^(W10*(1-quality)) - 1).
	W8  float64 `json:"w8"`
	W9  float64 `json:"w9"`
	W10 float64 `json:"w10"`

	// TargetRetention is the recall probability the review interval aims for.
	TargetRetention float64 `json:"targetRetention"`
	// LearningSteps are the short intervals used while an item is NEW or
	// LEARNING, indexed by the item's correct-review count.
	LearningSteps []time.Duration `json:"learningSteps"`
	// MaximumInterval caps the scheduled review interval.
	MaximumInterval time.Duration `json:"maximumInterval"`
	// EasyBonus multiplies the review interval on an EASY response.
	EasyBonus float64 `json:"easyBonus"`
	// HardFactor multiplies the review interval on a HARD response.
	HardFactor float64 `json:"hardFactor"`

	// ExplorationRate is the probability of an uncertainty-weighted draw
	// instead of a top-priority pick during session selection.
	ExplorationRate float64 `json:"explorationRate"`
	// UncertaintyWeight scales the uncertainty term of the priority score.
	UncertaintyWeight float64 `json:"uncertaintyWeight"`
}

// rtSmoothing is the EMA smoothing factor for avgResponseTimeMs.
const rtSmoothing = 0.1

// DefaultParams returns the reference parameter set.
func DefaultParams() Params {
	return Params{
		W0:                0.4,
		W1:                0.6,
		W6:                0.86,
		W8:                1.49,
		W9:                0.14,
		W10:               0.94,
		TargetRetention:   0.85,
		LearningSteps:     []time.Duration{time.Minute, 10 * time.Minute},
		MaximumInterval:   36500 * 24 * time.Hour, // 100 years
		EasyBonus:         4,
		HardFactor:        0.5,
		ExplorationRate:   0.1,
		UncertaintyWeight: 0.2,
	}
}

// ApplyDefaults fills zero-value fields with the reference values.
// A nil LearningSteps slice gets the default steps; an explicitly empty
// slice is rejected by Validate.
func (p *Params) ApplyDefaults() {
	def := DefaultParams()
	if p.W0 == 0 {
		p.W0 = def.W0
	}
	if p.W1 == 0 {
		p.W1 = def.W1
	}
	if p.W6 == 0 {
		p.W6 = def.W6
	}
	if p.W8 == 0 {
		p.W8 = def.W8
	}
	if p.W9 == 0 {
		p.W9 = def.W9
	}
	if p.W10 == 0 {
		p.W10 = def.W10
	}
	if p.TargetRetention == 0 {
		p.TargetRetention = def.TargetRetention
	}
	if p.LearningSteps == nil {
		p.LearningSteps = def.LearningSteps
	}
	if p.MaximumInterval == 0 {
		p.MaximumInterval = def.MaximumInterval
	}
	if p.EasyBonus == 0 {
		p.EasyBonus = def.EasyBonus
	}
	if p.HardFactor == 0 {
		p.HardFactor = def.HardFactor
	}
	if p.ExplorationRate == 0 {
		p.ExplorationRate = def.ExplorationRate
	}
	if p.UncertaintyWeight == 0 {
		p.UncertaintyWeight = def.UncertaintyWeight
	}
}

// Validate reports whether the parameter set is usable.
func (p Params) Validate() error {
	if p.TargetRetention <= 0 || p.TargetRetention >= 1 {
		return fmt.Errorf("%w: target retention %f out of range (0, 1)", ErrInvalidParameters, p.TargetRetention)
	}
	if len(p.LearningSteps) == 0 {
		return fmt.Errorf("%w: at least one learning step is required", ErrInvalidParameters)
	}
	for i, step := range p.LearningSteps {
		if step <= 0 {
			return fmt.Errorf("%w: learning step %d is not positive", ErrInvalidParameters, i)
		}
	}
	if p.MaximumInterval <= 0 {
		return fmt.Errorf("%w: maximum interval must be positive", ErrInvalidParameters)
	}
	if p.ExplorationRate < 0 || p.ExplorationRate > 1 {
		return fmt.Errorf("%w: exploration rate %f out of range [0, 1]", ErrInvalidParameters, p.ExplorationRate)
	}
	return nil
}

package srs

import (
	"math/rand"
	"sort"
	"time"
)

// Selector chooses the items for a session, balancing urgent items against
// uncertain ones. Randomness comes from an injected source so tests can fix
// the sequence.
type Selector struct {
	scorer *Scorer
	rate   float64
	rng    *rand.Rand
}

// NewSelector creates a Selector. A nil rng gets a time-seeded source.
func NewSelector(params Params, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{
		scorer: NewScorer(params),
		rate:   params.ExplorationRate,
		rng:    rng,
	}
}

// Select picks up to targetCount items from the candidates, in draw order.
// Every candidate's priority and uncertainty are refreshed first, then the
// pool is sorted by priority. Each draw takes the top-priority candidate,
// except with probability rate it instead samples the remaining pool
// weighted by uncertainty. A non-positive targetCount yields an empty
// selection.
func (sel *Selector) Select(candidates []ItemState, targetCount int, now time.Time) []ItemState {
	if targetCount <= 0 || len(candidates) == 0 {
		return nil
	}

	pool := make([]ItemState, len(candidates))
	for i, c := range candidates {
		pool[i] = sel.scorer.Refresh(c, now)
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Priority > pool[j].Priority
	})

	n := targetCount
	if n > len(pool) {
		n = len(pool)
	}

	chosen := make([]ItemState, 0, n)
	for len(chosen) < n {
		idx := 0
		if sel.rng.Float64() < sel.rate {
			idx = sel.weightedDraw(pool)
		}
		chosen = append(chosen, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return chosen
}

// weightedDraw samples an index from the pool with probability proportional
// to uncertainty. Falls back to the top candidate when the total weight is
// zero.
func (sel *Selector) weightedDraw(pool []ItemState) int {
	total := 0.0
	for _, s := range pool {
		total += s.Uncertainty
	}
	if total <= 0 {
		return 0
	}
	x := sel.rng.Float64() * total
	for i, s := range pool {
		x -= s.Uncertainty
		if x <= 0 {
			return i
		}
	}
	return len(pool) - 1
}

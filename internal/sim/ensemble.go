package sim

import (
	"context"
	"math/rand"

	"github.com/san-kum/dblpend/internal/dynamo"
	"github.com/san-kum/dblpend/internal/physics"
)

// Ensemble runs many independent pendulums with the same constants and
// consecutive seeds. Each run owns its Pendulum and Simulator outright.
type Ensemble struct {
	constants     physics.Constants
	trailCapacity int
	numRuns       int
	seedStart     int64
}

func NewEnsemble(c physics.Constants, trailCapacity, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{
		constants:     c,
		trailCapacity: trailCapacity,
		numRuns:       numRuns,
		seedStart:     seedStart,
	}
}

// Run returns one Result per seed, in seed order.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	dynamo.ParallelFor(e.numRuns, 1, func(start, end int) {
		for idx := start; idx < end; idx++ {
			rng := rand.New(rand.NewSource(e.seedStart + int64(idx)))
			p, err := NewPendulum(e.constants, physics.NewState(rng), e.trailCapacity)
			if err != nil {
				errs[idx] = err
				continue
			}
			results[idx], errs[idx] = New().Run(ctx, p, cfg)
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

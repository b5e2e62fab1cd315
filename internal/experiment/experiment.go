package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/dblpend/internal/config"
	"github.com/san-kum/dblpend/internal/dynamo"
	"github.com/san-kum/dblpend/internal/metrics"
	"github.com/san-kum/dblpend/internal/sim"
)

// Experiment is one headless run assembled from a Config: a seeded start,
// the selected integrator and the default metrics.
type Experiment struct {
	cfg       *config.Config
	pendulum  *sim.Pendulum
	simulator *sim.Simulator
	flips     *metrics.Flips
	progress  *progress
}

func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	p, err := sim.NewPendulum(cfg.PhysicalConstants(), cfg.GetInitState(rng), cfg.TrailCapacity)
	if err != nil {
		return nil, err
	}
	p.MaxStep = time.Duration(cfg.MaxStepMs * float64(time.Millisecond))

	integ, err := Integrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	p.SetIntegrator(integ)

	e := &Experiment{
		cfg:       cfg,
		pendulum:  p,
		simulator: sim.New(),
		flips:     metrics.NewFlips(1),
		progress:  &progress{},
	}
	for _, m := range DefaultMetrics(p) {
		e.simulator.AddMetric(m)
	}
	e.simulator.AddMetric(e.flips)
	e.simulator.AddObserver(e.progress)
	return e, nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not set up")
	}

	result, err := e.simulator.Run(ctx, e.pendulum, sim.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		ValidateState: true,
	})
	if err != nil {
		return result, err
	}

	result.Metrics["first_flip"] = e.flips.FirstFlip()
	dynamo.Logger().Info("experiment finished",
		"integrator", e.cfg.Integrator,
		"seed", e.cfg.Seed,
		"steps", result.StepsTaken,
		"drift", result.EnergyDrift)
	return result, nil
}

func (e *Experiment) Pendulum() *sim.Pendulum { return e.pendulum }

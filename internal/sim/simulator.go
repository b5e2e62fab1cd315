package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/dblpend/internal/dynamo"
	"github.com/san-kum/dblpend/internal/physics"
)

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.016,
		Duration:      10.0,
		ValidateState: true,
	}
}

type Result struct {
	States      []physics.State
	Times       []float64
	Energies    []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}

// Simulator drives a Pendulum headlessly with a fixed step, notifying
// metrics and observers before every step.
type Simulator struct {
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// maxSteps bounds Duration/Dt for a single run.
const maxSteps = 1 << 30

func (s *Simulator) Run(ctx context.Context, p *Pendulum, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	capacity := min(steps+1, 1<<16)
	result := &Result{
		States:   make([]physics.State, 0, capacity),
		Times:    make([]float64, 0, capacity),
		Energies: make([]float64, 0, capacity),
		Metrics:  make(map[string]float64),
		Errors:   make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	// invalid reports and records a non-finite vector at step i.
	invalid := func(i int, x dynamo.Vector) bool {
		if !cfg.ValidateState || x.IsValid() {
			return false
		}
		result.Errors = append(result.Errors, &dynamo.SimulationError{
			Step:    i,
			Time:    p.Time(),
			State:   x,
			Wrapped: dynamo.ErrInvalidState,
		})
		dynamo.Logger().Warn("state became non-finite", "step", i, "t", p.Time())
		return true
	}

	record := func() {
		result.States = append(result.States, p.State())
		result.Times = append(result.Times, p.Time())
		result.Energies = append(result.Energies, p.Energy())
	}
	record()

	if invalid(0, physics.ToVector(p.State())) {
		steps = 0
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		x := physics.ToVector(p.State())
		for _, m := range s.metrics {
			m.Observe(x, nil, p.Time())
		}
		for _, obs := range s.observers {
			obs.OnStep(x, nil, p.Time())
		}

		p.Advance(cfg.Dt)

		if invalid(i, physics.ToVector(p.State())) {
			break
		}

		result.StepsTaken++
		record()
	}

	// Only finite states are recorded, so the drift stays finite when a
	// run is cut short.
	e0, e1 := result.Energies[0], result.Energies[len(result.Energies)-1]
	if e0 != 0 && !math.IsNaN(e0) && !math.IsInf(e0, 0) && !math.IsNaN(e1) && !math.IsInf(e1, 0) {
		result.EnergyDrift = math.Abs(e1-e0) / math.Abs(e0)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	dynamo.Logger().Debug("run finished",
		"steps", result.StepsTaken,
		"t", p.Time(),
		"energy_drift", result.EnergyDrift,
	)

	return result, nil
}

// positive reports whether v is a finite number above zero.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func validateConfig(cfg Config) error {
	if !positive(cfg.Dt) {
		return fmt.Errorf("dt must be positive and finite, got %g", cfg.Dt)
	}
	if !positive(cfg.Duration) {
		return fmt.Errorf("duration must be positive and finite, got %g", cfg.Duration)
	}
	if cfg.Duration/cfg.Dt > maxSteps {
		return fmt.Errorf("duration %g with dt %g needs more than %d steps", cfg.Duration, cfg.Dt, maxSteps)
	}
	return nil
}

package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/dblpend/internal/dynamo"
	"github.com/san-kum/dblpend/internal/physics"
)

func TestMeanEnergy(t *testing.T) {
	dyn := physics.NewDoublePendulum(physics.Reference)
	m := NewMeanEnergy(dyn)

	a := physics.ToVector(physics.State{Angle0: math.Pi / 4})
	b := physics.ToVector(physics.State{Angle0: 2.5, Angle1: 2.6})

	m.Observe(a, nil, 0)
	m.Observe(b, nil, 0.01)

	expected := (dyn.Energy(a) + dyn.Energy(b)) / 2
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected mean energy %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDriftOverRun(t *testing.T) {
	c := physics.Constants{G: 1, M: 1, L: 1}
	dyn := physics.NewDoublePendulum(c)
	m := NewEnergyDrift(dyn)

	s := physics.State{Angle0: 2.5, Angle1: 2.6}
	for i := 0; i < 1000; i++ {
		m.Observe(physics.ToVector(s), nil, float64(i)*0.001)
		s = physics.Step(c, s, 0.001)
	}

	if m.Value() > 0.01 {
		t.Errorf("energy drift %g above 1%%", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestEnergyDriftDetectsChange(t *testing.T) {
	dyn := physics.NewDoublePendulum(physics.Reference)
	m := NewEnergyDrift(dyn)

	m.Observe(physics.ToVector(physics.State{Angle0: 2.5}), nil, 0)
	m.Observe(physics.ToVector(physics.State{Angle0: 2.5, Momentum0: 1}), nil, 1)

	if m.Value() <= 0 {
		t.Error("expected non-zero drift after energy change")
	}
}

func TestFlips(t *testing.T) {
	f := NewFlips(1)

	path := []float64{3.0, 3.1, 3.2, 3.3, 3.0, 2.0, 0.0, -3.2, -3.3}
	for i, a := range path {
		f.Observe(dynamo.Vector{0, a, 0, 0}, nil, float64(i))
	}

	// over the top at +π (twice: up then back) and once at -π
	if f.Value() != 3 {
		t.Errorf("expected 3 flips, got %v", f.Value())
	}
	if f.FirstFlip() != 2 {
		t.Errorf("expected first flip at t=2, got %v", f.FirstFlip())
	}

	f.Reset()
	if f.Value() != 0 || f.FirstFlip() != -1 {
		t.Error("expected cleared flips after reset")
	}
}

func TestFlipsSkipsNonFinite(t *testing.T) {
	f := NewFlips(1)

	path := []float64{3.0, math.NaN(), math.Inf(1), 3.1, math.Inf(-1), 3.0}
	for i, a := range path {
		f.Observe(dynamo.Vector{0, a, 0, 0}, nil, float64(i))
	}
	if f.Value() != 0 {
		t.Errorf("expected 0 flips, got %v", f.Value())
	}
	if f.FirstFlip() != -1 {
		t.Errorf("expected no first flip, got %v", f.FirstFlip())
	}
}

package dynamo

import "math"

// Vector is a flat state vector. The double pendulum uses
// [angle0, angle1, momentum0, momentum1].
type Vector []float64

func (v Vector) Clone() Vector {
	return append(Vector(nil), v...)
}

// IsValid reports whether every component is finite.
func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Add returns v + w. Components of v beyond len(w) are copied unchanged.
func (v Vector) Add(w Vector) Vector {
	return v.combine(w, 1)
}

// Sub returns v - w, with the same length rule as Add.
func (v Vector) Sub(w Vector) Vector {
	return v.combine(w, -1)
}

func (v Vector) combine(w Vector, sign float64) Vector {
	out := v.Clone()
	for i := range min(len(v), len(w)) {
		out[i] += sign * w[i]
	}
	return out
}

func (v Vector) Scale(k float64) Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = x * k
	}
	return out
}

// Control is an external input vector. The pendulum is unforced and
// always passes nil.
type Control []float64

// System is an ODE dx/dt = f(x, u, t).
type System interface {
	Derive(x Vector, u Control, t float64) Vector
	StateDim() int
	ControlDim() int
}

// Hamiltonian systems report their conserved total energy.
type Hamiltonian interface {
	Energy(x Vector) float64
}

// Integrator advances x by one fixed step. Implementations must not retain x.
type Integrator interface {
	Step(dyn System, x Vector, u Control, t float64, dt float64) Vector
}

// Metric accumulates a scalar over the states of a run.
type Metric interface {
	Name() string
	Observe(x Vector, u Control, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x Vector, u Control, t float64)
}

// Configurable exposes named physical parameters.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

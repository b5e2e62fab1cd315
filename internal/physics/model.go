package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/dblpend/internal/dynamo"
)

// DoublePendulum adapts the Hamiltonian equations to the generic
// [dynamo.System] interface. Vectors are laid out as
// [angle0, angle1, momentum0, momentum1].
type DoublePendulum struct {
	Constants
}

var _ dynamo.Configurable = (*DoublePendulum)(nil)

func NewDoublePendulum(c Constants) *DoublePendulum {
	return &DoublePendulum{Constants: c}
}

func (d *DoublePendulum) StateDim() int   { return 4 }
func (d *DoublePendulum) ControlDim() int { return 0 }

func (d *DoublePendulum) Derive(x dynamo.Vector, u dynamo.Control, t float64) dynamo.Vector {
	return ToVector(Derivative(d.Constants, FromVector(x)))
}

func (d *DoublePendulum) Energy(x dynamo.Vector) float64 {
	return Energy(d.Constants, FromVector(x))
}

func (d *DoublePendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"g": d.G,
		"m": d.M,
		"l": d.L,
	}
}

func (d *DoublePendulum) SetParam(name string, value float64) error {
	if !(value > 0) || math.IsInf(value, 1) {
		return fmt.Errorf("%s=%g: %w", name, value, dynamo.ErrParameterBounds)
	}
	switch name {
	case "g":
		d.G = value
	case "m":
		d.M = value
	case "l":
		d.L = value
	default:
		return fmt.Errorf("%s: %w", name, dynamo.ErrUnknownParam)
	}
	return nil
}

func ToVector(s State) dynamo.Vector {
	return dynamo.Vector{s.Angle0, s.Angle1, s.Momentum0, s.Momentum1}
}

// FromVector reads the first four components of x. Missing components are zero.
func FromVector(x dynamo.Vector) State {
	var v [4]float64
	copy(v[:], x)
	return State{Angle0: v[0], Angle1: v[1], Momentum0: v[2], Momentum1: v[3]}
}

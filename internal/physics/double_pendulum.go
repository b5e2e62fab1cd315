package physics

import (
	"math"

	"github.com/jbeda/geom"
)

// Constants are the physical constants of a double pendulum with two
// identical uniform rods.
type Constants struct {
	G float64 // gravitational acceleration
	M float64 // mass of each rod
	L float64 // length of each rod
}

// Common gravity settings; mass and length stay at one.
var (
	Reference = Constants{G: 1.2, M: 1.0, L: 1.0}
	Heavy     = Constants{G: 2.0, M: 1.0, L: 1.0}
	Strong    = Constants{G: 3.0, M: 1.0, L: 1.0}
)

// State is the instantaneous configuration of the pendulum. Angles are
// measured from the downward vertical and are never wrapped. Momentum0 and
// Momentum1 are the canonical momenta conjugate to the angles, not angular
// velocities.
type State struct {
	Angle0, Angle1       float64
	Momentum0, Momentum1 float64
}

// Source is a uniform generator over [0, 1). *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewState returns a random near-inverted configuration at rest. Both
// angles fall in [3π/4, 5π/4).
func NewState(rng Source) State {
	return State{
		Angle0: rng.Float64()*math.Pi/2 + math.Pi*3/4,
		Angle1: rng.Float64()*math.Pi/2 + math.Pi*3/4,
	}
}

// Denominator is the coupling term 16 - 9cos²(a0-a1) shared by both angle
// rates. It is never below 7.
func Denominator(angle0, angle1 float64) float64 {
	cos01 := math.Cos(angle0 - angle1)
	return 16 - 9*cos01*cos01
}

// Derivative evaluates Hamilton's equations at s. The result holds the
// angle rates in the angle fields and the momentum rates in the momentum
// fields.
func Derivative(c Constants, s State) State {
	ml2 := c.M * c.L * c.L
	cos01 := math.Cos(s.Angle0 - s.Angle1)
	sin01 := math.Sin(s.Angle0 - s.Angle1)
	denom := 16 - 9*cos01*cos01

	dA0 := (6 / ml2) * (2*s.Momentum0 - 3*cos01*s.Momentum1) / denom
	dA1 := (6 / ml2) * (8*s.Momentum1 - 3*cos01*s.Momentum0) / denom
	dP0 := (-ml2 / 2) * (dA0*dA1*sin01 + 3*(c.G/c.L)*math.Sin(s.Angle0))
	dP1 := (-ml2 / 2) * (-dA0*dA1*sin01 + 3*(c.G/c.L)*math.Sin(s.Angle1))

	return State{Angle0: dA0, Angle1: dA1, Momentum0: dP0, Momentum1: dP1}
}

// advance returns s + h*k componentwise.
func (s State) advance(k State, h float64) State {
	return State{
		Angle0:    s.Angle0 + h*k.Angle0,
		Angle1:    s.Angle1 + h*k.Angle1,
		Momentum0: s.Momentum0 + h*k.Momentum0,
		Momentum1: s.Momentum1 + h*k.Momentum1,
	}
}

// Step advances s by dt seconds with one classical fourth-order Runge-Kutta
// step. It is pure and allocation free, so independent pendulums can be
// stepped from different goroutines. Any dt >= 0 is accepted; dt == 0
// returns s unchanged.
func Step(c Constants, s State, dt float64) State {
	if dt == 0 {
		return s
	}

	h := dt * 0.5
	k1 := Derivative(c, s)
	k2 := Derivative(c, s.advance(k1, h))
	k3 := Derivative(c, s.advance(k2, h))
	k4 := Derivative(c, s.advance(k3, dt))

	dt6 := dt / 6.0
	return State{
		Angle0:    s.Angle0 + dt6*(k1.Angle0+2*k2.Angle0+2*k3.Angle0+k4.Angle0),
		Angle1:    s.Angle1 + dt6*(k1.Angle1+2*k2.Angle1+2*k3.Angle1+k4.Angle1),
		Momentum0: s.Momentum0 + dt6*(k1.Momentum0+2*k2.Momentum0+2*k3.Momentum0+k4.Momentum0),
		Momentum1: s.Momentum1 + dt6*(k1.Momentum1+2*k2.Momentum1+2*k3.Momentum1+k4.Momentum1),
	}
}

// Energy is the value of the Hamiltonian at s. The kinetic part is
// ½(p0·ȧ0 + p1·ȧ1) since the kinetic energy is quadratic in the momenta.
func Energy(c Constants, s State) float64 {
	d := Derivative(c, s)
	ke := 0.5 * (s.Momentum0*d.Angle0 + s.Momentum1*d.Angle1)
	pe := -1.5 * c.M * c.G * c.L * (math.Cos(s.Angle0) + math.Cos(s.Angle1))
	return ke + pe
}

// Positions returns the ends of both rods relative to the pivot, x to the
// right and y up.
func Positions(c Constants, s State) (upper, lower geom.Coord) {
	upper = geom.Coord{
		X: c.L * math.Sin(s.Angle0),
		Y: -c.L * math.Cos(s.Angle0),
	}
	lower = geom.Coord{
		X: upper.X + c.L*math.Sin(s.Angle1),
		Y: upper.Y - c.L*math.Cos(s.Angle1),
	}
	return upper, lower
}

// IsFinite reports whether every component of s is a finite number.
func (s State) IsFinite() bool {
	for _, v := range [4]float64{s.Angle0, s.Angle1, s.Momentum0, s.Momentum1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

package sim

import (
	"fmt"
	"time"

	"github.com/jbeda/geom"

	"github.com/san-kum/dblpend/internal/dynamo"
	"github.com/san-kum/dblpend/internal/physics"
	"github.com/san-kum/dblpend/internal/trail"
)

// DefaultMaxStep bounds the wall time a single Tick may simulate.
const DefaultMaxStep = 30 * time.Millisecond

// Pendulum is one independently owned simulation: constants, state and the
// trail of the lower mass. Distinct Pendulums share nothing and may be
// advanced from different goroutines; a single Pendulum is not safe for
// concurrent use.
type Pendulum struct {
	constants physics.Constants
	state     physics.State
	trail     *trail.Buffer
	time      float64

	// MaxStep clamps the elapsed time passed to Tick.
	MaxStep time.Duration

	integ dynamo.Integrator
	model *physics.DoublePendulum
}

func NewPendulum(c physics.Constants, s physics.State, trailCapacity int) (*Pendulum, error) {
	if !positive(c.G) || !positive(c.M) || !positive(c.L) {
		return nil, fmt.Errorf("constants %+v: %w", c, dynamo.ErrParameterBounds)
	}
	tr, err := trail.New(trailCapacity)
	if err != nil {
		return nil, err
	}
	return &Pendulum{
		constants: c,
		state:     s,
		trail:     tr,
		MaxStep:   DefaultMaxStep,
		model:     physics.NewDoublePendulum(c),
	}, nil
}

// SetIntegrator routes Advance through a generic vector integrator. Nil
// restores the built-in RK4 step.
func (p *Pendulum) SetIntegrator(integ dynamo.Integrator) {
	p.integ = integ
}

// Advance integrates dt seconds and records the new lower mass position.
// A zero or negative dt leaves the pendulum and its trail untouched and
// reports false.
func (p *Pendulum) Advance(dt float64) bool {
	if !(dt > 0) {
		return false
	}
	if p.integ != nil {
		x := p.integ.Step(p.model, physics.ToVector(p.state), nil, p.time, dt)
		p.state = physics.FromVector(x)
	} else {
		p.state = physics.Step(p.constants, p.state, dt)
	}
	p.time += dt
	_, lower := physics.Positions(p.constants, p.state)
	p.trail.Push(lower)
	return true
}

// Tick advances by the wall time elapsed since the previous frame, clamped
// to MaxStep.
func (p *Pendulum) Tick(elapsed time.Duration) bool {
	if p.MaxStep > 0 && elapsed > p.MaxStep {
		elapsed = p.MaxStep
	}
	return p.Advance(elapsed.Seconds())
}

// Reset restarts from s with an empty trail.
func (p *Pendulum) Reset(s physics.State) {
	p.state = s
	p.time = 0
	p.trail.Reset()
}

var _ dynamo.Configurable = (*Pendulum)(nil)

// SetParam changes one physical constant ("g", "m" or "l") in place. The
// state is kept. The trail is kept too unless l changes, since its points
// are at the old rod length's scale.
func (p *Pendulum) SetParam(name string, value float64) error {
	if err := p.model.SetParam(name, value); err != nil {
		return err
	}
	if p.model.L != p.constants.L {
		p.trail.Reset()
	}
	p.constants = p.model.Constants
	return nil
}

func (p *Pendulum) GetParams() map[string]float64 { return p.model.GetParams() }

func (p *Pendulum) State() physics.State           { return p.state }
func (p *Pendulum) Constants() physics.Constants   { return p.constants }
func (p *Pendulum) Trail() *trail.Buffer           { return p.trail }
func (p *Pendulum) Time() float64                  { return p.time }
func (p *Pendulum) Energy() float64                { return physics.Energy(p.constants, p.state) }
func (p *Pendulum) Model() *physics.DoublePendulum { return p.model }

func (p *Pendulum) Positions() (upper, lower geom.Coord) {
	return physics.Positions(p.constants, p.state)
}

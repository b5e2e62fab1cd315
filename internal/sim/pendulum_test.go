package sim_test

import (
	"math"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dblpend/internal/dynamo"
	"github.com/san-kum/dblpend/internal/integrators"
	"github.com/san-kum/dblpend/internal/physics"
	"github.com/san-kum/dblpend/internal/sim"
	"github.com/san-kum/dblpend/internal/trail"
)

var _ = Describe("Pendulum", func() {
	var (
		start physics.State
		p     *sim.Pendulum
	)

	BeforeEach(func() {
		start = physics.State{Angle0: 2.5, Angle1: 2.6}
		var err error
		p, err = sim.NewPendulum(physics.Reference, start, 400)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a bad trail capacity", func() {
		_, err := sim.NewPendulum(physics.Reference, start, 0)
		Expect(err).To(MatchError(trail.ErrCapacity))
	})

	It("rejects non-positive constants", func() {
		_, err := sim.NewPendulum(physics.Constants{G: 1, M: 0, L: 1}, start, 10)
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})

	It("does nothing on a zero-length tick", func() {
		Expect(p.Tick(0)).To(BeFalse())
		Expect(p.State()).To(Equal(start))
		Expect(p.Trail().Len()).To(Equal(0))
		Expect(p.Time()).To(BeZero())
	})

	It("ignores negative steps", func() {
		Expect(p.Advance(-0.5)).To(BeFalse())
		Expect(p.State()).To(Equal(start))
	})

	It("steps once and pushes the lower mass position", func() {
		Expect(p.Advance(0.016)).To(BeTrue())
		Expect(p.State()).To(Equal(physics.Step(physics.Reference, start, 0.016)))

		_, lower := p.Positions()
		latest, ok := p.Trail().Latest()
		Expect(ok).To(BeTrue())
		Expect(latest).To(Equal(lower))
		Expect(p.Trail().Len()).To(Equal(1))
	})

	It("clamps long frames to MaxStep", func() {
		Expect(p.Tick(time.Hour)).To(BeTrue())
		Expect(p.Time()).To(BeNumerically("~", sim.DefaultMaxStep.Seconds(), 1e-15))
		Expect(p.State()).To(Equal(physics.Step(physics.Reference, start, sim.DefaultMaxStep.Seconds())))
	})

	It("keeps at most capacity trail samples", func() {
		for i := 0; i < 1000; i++ {
			p.Tick(16 * time.Millisecond)
		}
		Expect(p.Trail().Len()).To(Equal(400))
	})

	It("resets state, time and trail", func() {
		for i := 0; i < 10; i++ {
			p.Advance(0.01)
		}
		other := physics.State{Angle0: 1}
		p.Reset(other)
		Expect(p.State()).To(Equal(other))
		Expect(p.Time()).To(BeZero())
		Expect(p.Trail().Len()).To(Equal(0))
	})

	It("can be driven by a generic integrator", func() {
		p.SetIntegrator(integrators.NewEuler())
		p.Advance(0.016)
		Expect(p.State()).NotTo(Equal(physics.Step(physics.Reference, start, 0.016)))

		p.Reset(start)
		p.SetIntegrator(nil)
		p.Advance(0.016)
		Expect(p.State()).To(Equal(physics.Step(physics.Reference, start, 0.016)))
	})

	It("retunes constants in place", func() {
		Expect(p.SetParam("g", 3.0)).To(Succeed())
		Expect(p.Constants()).To(Equal(physics.Strong))
		p.Advance(0.016)
		Expect(p.State()).To(Equal(physics.Step(physics.Strong, start, 0.016)))

		Expect(p.SetParam("g", -1)).To(MatchError(dynamo.ErrParameterBounds))
		Expect(p.SetParam("g", math.NaN())).To(MatchError(dynamo.ErrParameterBounds))
		Expect(p.SetParam("l", math.Inf(1))).To(MatchError(dynamo.ErrParameterBounds))
		Expect(p.SetParam("k", 1)).To(MatchError(dynamo.ErrUnknownParam))
		Expect(p.Constants()).To(Equal(physics.Strong))
		Expect(p.GetParams()).To(HaveKeyWithValue("g", 3.0))
	})

	It("keeps the trail on a g change and clears it on an l change", func() {
		for i := 0; i < 5; i++ {
			p.Advance(0.016)
		}
		Expect(p.Trail().Len()).To(Equal(5))

		Expect(p.SetParam("g", 3.0)).To(Succeed())
		Expect(p.Trail().Len()).To(Equal(5))

		before := p.State()
		Expect(p.SetParam("l", 2.0)).To(Succeed())
		Expect(p.Trail().Len()).To(BeZero())
		Expect(p.State()).To(Equal(before))

		p.Advance(0.016)
		_, lower := p.Positions()
		latest, ok := p.Trail().Latest()
		Expect(ok).To(BeTrue())
		Expect(latest).To(Equal(lower))
		Expect(p.Trail().Len()).To(Equal(1))
	})

	It("rejects non-finite constants", func() {
		_, err := sim.NewPendulum(physics.Constants{G: math.NaN(), M: 1, L: 1}, start, 8)
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		_, err = sim.NewPendulum(physics.Constants{G: 1, M: 1, L: math.Inf(1)}, start, 8)
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})

	It("advances independent instances concurrently without interference", func() {
		serial, err := sim.NewPendulum(physics.Reference, start, 64)
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < 500; i++ {
			serial.Advance(0.016)
		}

		pendulums := make([]*sim.Pendulum, 8)
		for i := range pendulums {
			pendulums[i], err = sim.NewPendulum(physics.Reference, start, 64)
			Expect(err).NotTo(HaveOccurred())
		}

		var wg sync.WaitGroup
		for _, q := range pendulums {
			wg.Add(1)
			go func(q *sim.Pendulum) {
				defer wg.Done()
				for i := 0; i < 500; i++ {
					q.Advance(0.016)
				}
			}(q)
		}
		wg.Wait()

		for _, q := range pendulums {
			Expect(q.State()).To(Equal(serial.State()))
		}
	})
})

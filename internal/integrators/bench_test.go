package integrators

import (
	"testing"

	"github.com/san-kum/dblpend/internal/physics"
)

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	dyn := physics.NewDoublePendulum(physics.Reference)
	x := physics.ToVector(physics.State{Angle0: 2.5, Angle1: 2.6})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, nil, 0, 0.016)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := physics.NewDoublePendulum(physics.Reference)
	x := physics.ToVector(physics.State{Angle0: 2.5, Angle1: 2.6})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, nil, 0, 0.016)
	}
}

func BenchmarkPhysicsStep(b *testing.B) {
	s := physics.State{Angle0: 2.5, Angle1: 2.6}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s = physics.Step(physics.Reference, s, 0.016)
	}
}

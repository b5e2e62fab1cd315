// Package physics holds the double pendulum equations of motion and the
// fixed-step integrator that advances them.
//
// The pendulum is two identical uniform rods of mass M and length L hanging
// from a fixed pivot under gravity G. Its state is written in Hamiltonian
// form: two angles and their canonical momenta.
//
//   - [Derivative]: Hamilton's equations, dX/dt = f(X)
//   - [Step]: one classical RK4 step, pure and allocation free
//   - [Energy]: the Hamiltonian, conserved up to integration error
//   - [Positions]: Cartesian rod ends for rendering
//
// [DoublePendulum] wraps the same equations as a [dynamo.System] so they can
// be driven by the generic integrators:
//
//	dyn := physics.NewDoublePendulum(physics.Reference)
//	if h, ok := any(dyn).(dynamo.Hamiltonian); ok {
//	    energy := h.Energy(x)
//	}
package physics

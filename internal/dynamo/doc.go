// Package dynamo provides the shared primitives the pendulum packages are
// built on.
//
// The package defines the small vocabulary used across the module:
//
//   - [Vector]: flat state vector used by the generic integrators
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Hamiltonian]: systems that can report their total energy
//   - [Metric] and [Observer]: hooks notified by the runner on each step
//
// # Example
//
//	dyn := physics.NewDoublePendulum(physics.Reference)
//	integ := integrators.NewRK4()
//	x := physics.ToVector(state)
//	x = integ.Step(dyn, x, nil, 0, 0.016)
//
// # Logging
//
// The package holds the module-wide structured logger. It is silent until
// [SetLogger] is called.
package dynamo

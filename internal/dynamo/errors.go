package dynamo

import "errors"

var (
	// ErrInvalidState means a state picked up a NaN or Inf component.
	ErrInvalidState = errors.New("dynamo: non-finite state")

	// ErrParameterBounds means a physical constant was zero, negative or not finite.
	ErrParameterBounds = errors.New("dynamo: parameter must be positive")

	// ErrContextCanceled wraps the context error when a run is interrupted.
	ErrContextCanceled = errors.New("dynamo: run canceled")

	// ErrUnknownParam is returned by Configurable.SetParam for names it does not own.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")
)

// SimulationError records where a run went wrong. It unwraps to the cause.
type SimulationError struct {
	Step    int
	Time    float64
	State   Vector
	Wrapped error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error { return e.Wrapped }

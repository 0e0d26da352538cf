package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCircuit is wrapped by every circuit validation failure.
	ErrInvalidCircuit = errors.New("invalid circuit")
	// ErrInvalidConfig is wrapped by every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrNoConvergence is reported when the eigensolver fails to converge.
	ErrNoConvergence = errors.New("eigendecomposition did not converge")
	// ErrNoSteadyState is returned when the network has a mode without heat
	// loss to ground, so constant power never settles.
	ErrNoSteadyState = errors.New("network has no steady state")
)

// NumericalError reports a failure of the underlying numerical library during
// setup. Retrying with the same circuit and config gives the same result.
type NumericalError struct {
	Op  string // operation that failed, e.g. "symmetric eigendecomposition"
	Err error
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("numerical error in %s: %v", e.Op, e.Err)
}

func (e *NumericalError) Unwrap() error { return e.Err }

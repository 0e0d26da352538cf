package sim

import (
	"fmt"
	"math"
)

// Config holds the simulation parameters that are independent of the network.
type Config struct {
	Ambient  float64 // baseline temperature added to every output
	TimeStep float64 // fixed step Δt (must be > 0)
}

// NewConfig groups the simulation parameters.
func NewConfig(ambient, timeStep float64) Config {
	return Config{Ambient: ambient, TimeStep: timeStep}
}

// Validate checks that the time step is a finite positive number and the
// ambient temperature is finite.
func (c Config) Validate() error {
	if math.IsNaN(c.TimeStep) || math.IsInf(c.TimeStep, 0) || c.TimeStep <= 0 {
		return fmt.Errorf("%w: time_step must be finite and positive, got %g", ErrInvalidConfig, c.TimeStep)
	}
	if math.IsNaN(c.Ambient) || math.IsInf(c.Ambient, 0) {
		return fmt.Errorf("%w: ambient must be finite, got %g", ErrInvalidConfig, c.Ambient)
	}
	return nil
}

// Package trace provides temperature-trace recording for thermal simulations.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// WindowRecord captures one Step call: the window's position in the run and
// per-core statistics over its steps.
type WindowRecord struct {
	Index     int
	StartStep int // first step of the window, counted from 0
	Steps     int
	Peak      []float64 // per core, highest temperature in the window
	Mean      []float64 // per core, average temperature over the window
	Final     []float64 // per core, temperature after the last step
	// Temperatures holds the raw step-major output (nil unless Level is TraceLevelSteps).
	Temperatures []float64
}

package sim

import (
	"fmt"
)

// Analysis advances the temperature of a thermal network window by window.
// Each Analysis owns its state history and must be used from one goroutine
// at a time; the Operators it reads may be shared.
type Analysis struct {
	ops     *Operators
	history *history
	steps   int // steps advanced across all windows
}

// NewAnalysis sets up the operators for circuit and config and returns an
// Analysis starting from zero excess temperature.
func NewAnalysis(circuit Circuit, config Config) (*Analysis, error) {
	ops, err := NewOperators(circuit, config)
	if err != nil {
		return nil, fmt.Errorf("set up analysis: %w", err)
	}
	return NewStepper(ops), nil
}

// NewStepper returns an Analysis over already computed operators, starting
// from zero excess temperature (every node at ambient).
func NewStepper(ops *Operators) *Analysis {
	if ops == nil {
		panic("NewStepper: ops must not be nil")
	}
	return &Analysis{ops: ops, history: newHistory(ops.nodes)}
}

// Operators returns the shared operators this Analysis steps with.
func (a *Analysis) Operators() *Operators { return a.ops }

// Steps returns the number of time steps advanced so far.
func (a *Analysis) Steps() int { return a.steps }

// Step advances the simulation by len(p)/cores steps. p holds the power of
// every core for each step, step-major: p[j*cores+c] is the power of core c
// at step j. The temperatures of the cores after each step are written to q
// in the same layout. len(p) must be a positive multiple of the core count
// and len(q) must equal len(p); anything else is a programming error and
// panics before any state is touched.
func (a *Analysis) Step(p, q []float64) {
	cores, nodes := a.ops.cores, a.ops.nodes
	if len(p) == 0 || len(p)%cores != 0 {
		panic(fmt.Sprintf("Analysis.Step: len(P)=%d is not a positive multiple of %d cores", len(p), cores))
	}
	if len(q) != len(p) {
		panic(fmt.Sprintf("Analysis.Step: len(Q)=%d, want %d", len(q), len(p)))
	}
	steps := len(p) / cores

	a.history.advanceWindow(steps)

	// The forcing terms of all steps are independent: one batched product.
	multiply(1, a.ops.f, p, 1, a.history.window(), nodes)

	// Each step depends on the one before it.
	for i := 0; i < steps; i++ {
		multiply(1, a.ops.e, a.history.block(i), 1, a.history.block(i+1), nodes)
	}

	d, ambient := a.ops.d, a.ops.config.Ambient
	for j := 0; j < steps; j++ {
		state := a.history.block(j + 1)
		for c := 0; c < cores; c++ {
			q[j*cores+c] = d[c]*state[c] + ambient
		}
	}
	a.steps += steps
}

// State writes the current temperature of every node into dst, allocating
// when dst is too short, and returns it.
func (a *Analysis) State(dst []float64) []float64 {
	nodes := a.ops.nodes
	if cap(dst) < nodes {
		dst = make([]float64, nodes)
	}
	dst = dst[:nodes]
	last := a.history.last()
	for i := range dst {
		dst[i] = a.ops.d[i]*last[i] + a.ops.config.Ambient
	}
	return dst
}

package sim

import (
	"fmt"
	"math"
)

// symmetryTolerance bounds |G[i][j] - G[j][i]| relative to the larger entry.
const symmetryTolerance = 1e-12

// Circuit describes an RC thermal network. The first Cores nodes are the
// heat sources; every node has a heat capacitance and the conductance matrix
// couples them, self terms included.
type Circuit struct {
	Cores       int       // heat-generating nodes (1 ≤ Cores ≤ Nodes)
	Nodes       int       // thermal nodes (≥ 1)
	Capacitance []float64 // length Nodes, all > 0
	Conductance []float64 // Nodes×Nodes, row-major, symmetric
}

// NewCircuit groups the network description. No validation is performed;
// call Validate or let NewOperators do it.
func NewCircuit(cores int, capacitance, conductance []float64) Circuit {
	return Circuit{
		Cores:       cores,
		Nodes:       len(capacitance),
		Capacitance: capacitance,
		Conductance: conductance,
	}
}

// Validate checks dimensions, capacitance positivity and conductance symmetry.
// It does not inspect the network topology.
func (c Circuit) Validate() error {
	if c.Nodes < 1 {
		return fmt.Errorf("%w: nodes must be >= 1, got %d", ErrInvalidCircuit, c.Nodes)
	}
	if c.Cores < 1 || c.Cores > c.Nodes {
		return fmt.Errorf("%w: cores must be in [1, %d], got %d", ErrInvalidCircuit, c.Nodes, c.Cores)
	}
	if len(c.Capacitance) != c.Nodes {
		return fmt.Errorf("%w: capacitance has %d entries, want %d", ErrInvalidCircuit, len(c.Capacitance), c.Nodes)
	}
	if len(c.Conductance) != c.Nodes*c.Nodes {
		return fmt.Errorf("%w: conductance has %d entries, want %d×%d", ErrInvalidCircuit, len(c.Conductance), c.Nodes, c.Nodes)
	}
	for i, v := range c.Capacitance {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: capacitance[%d] must be finite and positive, got %g", ErrInvalidCircuit, i, v)
		}
	}
	n := c.Nodes
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			a, b := c.Conductance[i*n+j], c.Conductance[j*n+i]
			if math.IsNaN(a) || math.IsInf(a, 0) {
				return fmt.Errorf("%w: conductance[%d][%d] must be finite, got %g", ErrInvalidCircuit, i, j, a)
			}
			if math.Abs(a-b) > symmetryTolerance*math.Max(math.Abs(a), math.Abs(b)) {
				return fmt.Errorf("%w: conductance is not symmetric at [%d][%d] (%g vs %g)", ErrInvalidCircuit, i, j, a, b)
			}
		}
	}
	return nil
}

package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thermal-sim/thermal-sim/sim/internal/testutil"
)

func circuitFrom(nw testutil.Network) Circuit {
	return NewCircuit(nw.Cores, nw.Capacitance, nw.Conductance)
}

// threeNodeNetwork is two cores on a shared spreader that leaks to ground.
func threeNodeNetwork() testutil.Network {
	return testutil.Network{
		Cores:       2,
		Capacitance: []float64{0.5, 0.8, 4.0},
		Conductance: []float64{
			2.0, -0.5, -1.5,
			-0.5, 2.5, -2.0,
			-1.5, -2.0, 4.5,
		},
	}
}

func mustOperators(t *testing.T, nw testutil.Network, config Config) *Operators {
	t.Helper()
	ops, err := NewOperators(circuitFrom(nw), config)
	require.NoError(t, err)
	return ops
}

// rampPower returns a deterministic, non-constant power trace.
func rampPower(cores, steps int) []float64 {
	p := make([]float64, cores*steps)
	for j := 0; j < steps; j++ {
		for c := 0; c < cores; c++ {
			p[j*cores+c] = float64((j*7+c*3)%11) + 0.5*float64(c)
		}
	}
	return p
}

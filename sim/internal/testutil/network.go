// Package testutil provides shared test infrastructure for the thermal
// simulator: fixture networks and tolerance-based float assertions used by
// sim/ and its sub-packages.
package testutil

import (
	"math"
	"testing"
)

// Network is a plain description of a fixture RC network, kept free of sim
// types so every test package can build its own circuit from it.
type Network struct {
	Cores       int
	Capacitance []float64
	Conductance []float64 // row-major, symmetric
}

// SingleNode returns one core with capacitance c and conductance g to ground.
// Its excess temperature under constant power p settles at p/g with time
// constant c/g.
func SingleNode(c, g float64) Network {
	return Network{Cores: 1, Capacitance: []float64{c}, Conductance: []float64{g}}
}

// Chain returns a line of nodes where node i couples to node i+1 with
// conductance link and only the last node leaks to ground with conductance
// ground. The first cores nodes are heat sources.
func Chain(cores int, capacitance []float64, link, ground float64) Network {
	n := len(capacitance)
	g := make([]float64, n*n)
	for i := 0; i+1 < n; i++ {
		g[i*n+i] += link
		g[(i+1)*n+i+1] += link
		g[i*n+i+1] -= link
		g[(i+1)*n+i] -= link
	}
	g[(n-1)*n+n-1] += ground
	return Network{Cores: cores, Capacitance: capacitance, Conductance: g}
}

// Floating returns two nodes joined by link with no path to ground. One of
// its modes has a zero eigenvalue.
func Floating(c0, c1, link float64) Network {
	return Network{
		Cores:       1,
		Capacitance: []float64{c0, c1},
		Conductance: []float64{link, -link, -link, link},
	}
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertSliceClose compares two slices element-wise with relative tolerance.
func AssertSliceClose(t *testing.T, name string, want, got []float64, relTol float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("%s: len = %d, want %d", name, len(got), len(want))
	}
	for i := range want {
		if want[i] == 0 && got[i] == 0 {
			continue
		}
		diff := math.Abs(want[i] - got[i])
		maxVal := math.Max(math.Abs(want[i]), math.Abs(got[i]))
		if diff/maxVal > relTol {
			t.Errorf("%s[%d]: got %v, want %v (relDiff=%v)", name, i, got[i], want[i], diff/maxVal)
		}
	}
}

package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Operators is the precomputed modal form of a thermal network for a fixed
// time step. All matrices are column-major. An Operators value is read-only
// after NewOperators returns and may be shared by any number of Analysis
// instances, including across goroutines.
type Operators struct {
	cores int
	nodes int

	config Config

	u []float64 // nodes×nodes, eigenvectors in columns
	l []float64 // nodes, eigenvalues (ascending)
	d []float64 // nodes, 1/sqrt(capacitance)
	e []float64 // nodes×nodes, zero-input propagation over one step
	f []float64 // nodes×cores, one-step forcing from core power
}

// factorizeSym computes eigenvalues and eigenvectors of a. Tests replace it
// to exercise the non-convergence path.
var factorizeSym = func(eig *mat.EigenSym, a mat.Symmetric) bool {
	return eig.Factorize(a, true)
}

// NewOperators diagonalizes the network and precomputes the one-step
// propagation and forcing matrices.
//
// The system C·dT/dt = -G·T + P is symmetrized with D = C^(-1/2), giving
// dS/dt = A·S + D·P with A = -D·G·D and S = T/D. A is symmetric, so A = U·L·Uᵗ
// and one step of length Δt is exactly
//
//	S(t+Δt) = U·diag(exp(Δt·L))·Uᵗ·S(t) + U·diag((exp(Δt·L)-1)/L)·Uᵗ·D·P(t).
func NewOperators(circuit Circuit, config Config) (*Operators, error) {
	if err := circuit.Validate(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	cores, nodes := circuit.Cores, circuit.Nodes

	d := make([]float64, nodes)
	for i, c := range circuit.Capacitance {
		d[i] = math.Sqrt(1 / c)
	}

	a := make([]float64, nodes*nodes)
	for i := 0; i < nodes; i++ {
		for j := 0; j < nodes; j++ {
			a[i*nodes+j] = -d[i] * d[j] * circuit.Conductance[j*nodes+i]
		}
	}

	var eig mat.EigenSym
	if ok := factorizeSym(&eig, mat.NewSymDense(nodes, a)); !ok {
		return nil, &NumericalError{Op: "symmetric eigendecomposition", Err: ErrNoConvergence}
	}
	l := eig.Values(nil)
	snapZeroModes(l)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)
	u := make([]float64, nodes*nodes)
	for j := 0; j < nodes; j++ {
		for i := 0; i < nodes; i++ {
			u[j*nodes+i] = vectors.At(i, j)
		}
	}

	dt := config.TimeStep
	decay := make([]float64, nodes)
	gain := make([]float64, nodes)
	for i, lambda := range l {
		decay[i] = math.Exp(dt * lambda)
		gain[i] = modalGain(lambda, dt)
	}
	logEigenvalues(l)

	// scratch holds diag(τ)·Uᵗ (and later diag(γ)·Uᵗ·D) column by column.
	scratch := make([]float64, nodes*nodes)
	for j := 0; j < nodes; j++ {
		for i := 0; i < nodes; i++ {
			scratch[j*nodes+i] = decay[i] * u[i*nodes+j]
		}
	}
	e := make([]float64, nodes*nodes)
	multiply(1, u, scratch, 0, e, nodes)

	for j := 0; j < cores; j++ {
		for i := 0; i < nodes; i++ {
			scratch[j*nodes+i] = gain[i] * u[i*nodes+j] * d[j]
		}
	}
	f := make([]float64, nodes*cores)
	multiply(1, u, scratch[:nodes*cores], 0, f, nodes)

	logrus.Debugf("thermal operators ready: %d cores, %d nodes, Δt=%g", cores, nodes, dt)

	return &Operators{
		cores:  cores,
		nodes:  nodes,
		config: config,
		u:      u,
		l:      l,
		d:      d,
		e:      e,
		f:      f,
	}, nil
}

// zeroModeTolerance scales machine epsilon by the problem size. Eigenvalues
// of a singular network come out of the solver as round-off of this order.
const zeroModeTolerance = 0x1p-52

// snapZeroModes replaces eigenvalues that are indistinguishable from zero at
// the scale of the spectrum with an exact zero, so a floating network is
// recognized as such regardless of the sign of the round-off.
func snapZeroModes(l []float64) {
	var scale float64
	for _, lambda := range l {
		scale = math.Max(scale, math.Abs(lambda))
	}
	tol := float64(len(l)) * zeroModeTolerance * scale
	for i, lambda := range l {
		if isZeroMode(lambda, tol) {
			l[i] = 0
		}
	}
}

func isZeroMode(lambda, tol float64) bool {
	return math.Abs(lambda) <= tol
}

// modalGain returns (exp(Δt·λ)-1)/λ, the integral of exp(λ·s) over one step.
// A mode without heat loss (λ = 0) accumulates for the whole step.
func modalGain(lambda, dt float64) float64 {
	if lambda == 0 {
		return dt
	}
	return math.Expm1(dt*lambda) / lambda
}

func logEigenvalues(l []float64) {
	if len(l) == 0 {
		return
	}
	logrus.Debugf("eigenvalue range [%g, %g]", floats.Min(l), floats.Max(l))
	for i, lambda := range l {
		switch {
		case lambda > 0:
			logrus.Warnf("eigenvalue %d is positive (%g); the network is not dissipative", i, lambda)
		case lambda == 0:
			logrus.Warnf("eigenvalue %d is zero; the mode has no heat loss to ground", i)
		}
	}
}

// Cores returns the number of heat-generating nodes.
func (o *Operators) Cores() int { return o.cores }

// Nodes returns the number of thermal nodes.
func (o *Operators) Nodes() int { return o.nodes }

// Config returns the configuration the operators were built for.
func (o *Operators) Config() Config { return o.config }

// Eigenvalues returns a copy of the eigenvalues of the symmetrized system,
// in ascending order.
func (o *Operators) Eigenvalues() []float64 {
	return append([]float64(nil), o.l...)
}

// Propagation returns a copy of the nodes×nodes propagation matrix.
func (o *Operators) Propagation() *mat.Dense {
	return colMajorDense(o.nodes, o.nodes, o.e)
}

// Forcing returns a copy of the nodes×cores forcing matrix.
func (o *Operators) Forcing() *mat.Dense {
	return colMajorDense(o.nodes, o.cores, o.f)
}

// SteadyState computes the temperature every core settles at when the
// per-core power p is held constant forever. It returns ErrNoSteadyState when
// a mode has a non-negative eigenvalue.
func (o *Operators) SteadyState(p []float64) ([]float64, error) {
	if len(p) != o.cores {
		panic(fmt.Sprintf("Operators.SteadyState: len(p)=%d, want %d", len(p), o.cores))
	}
	nodes := o.nodes
	// Uᵗ·D·p, one entry per mode.
	modal := make([]float64, nodes)
	for k := 0; k < nodes; k++ {
		if o.l[k] >= 0 {
			return nil, fmt.Errorf("%w: eigenvalue %d is %g", ErrNoSteadyState, k, o.l[k])
		}
		var sum float64
		for c := 0; c < o.cores; c++ {
			sum += o.u[k*nodes+c] * o.d[c] * p[c]
		}
		modal[k] = -sum / o.l[k]
	}
	temps := make([]float64, o.cores)
	for c := range temps {
		var sum float64
		for k := 0; k < nodes; k++ {
			sum += o.u[k*nodes+c] * modal[k]
		}
		temps[c] = o.d[c]*sum + o.config.Ambient
	}
	return temps, nil
}

func colMajorDense(rows, cols int, data []float64) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			m.Set(i, j, data[j*rows+i])
		}
	}
	return m
}

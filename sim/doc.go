// Package sim provides the core transient simulation engine for RC thermal
// networks.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - circuit.go, config.go: the network description and the fixed time step
//   - operators.go: modal decomposition and the one-step propagation (E) and
//     forcing (F) matrices
//   - analysis.go: the stepping engine that advances the state window by window
//   - history.go: the growable state buffer carried across Step calls
//
// # Method
//
// The network C·dT/dt = -G·T + P is symmetrized with D = C^(-1/2) and
// diagonalized once. Every step is then an exact matrix-exponential update,
// S(k+1) = E·S(k) + F·P(k), with no numerical integration error.
//
// # Architecture
//
// Sub-packages build on the kernel:
//   - sim/power/: per-core power profiles and window-by-window trace sources
//   - sim/trace/: per-window temperature statistics and run summaries
//   - sim/ensemble/: window driver and concurrent runs sharing one Operators
//
// Operators are immutable and safe to share; each Analysis owns its history
// and has exactly one mutator.
package sim

package power

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/thermal-sim/thermal-sim/sim"
)

// Profile yields the power of one core at a given step.
type Profile interface {
	// At returns the power at step k. Steps are requested in increasing order.
	At(k int, rng *rand.Rand) float64
}

// Constant dissipates the same power at every step.
type Constant struct{ Watts float64 }

// At returns Watts at every step.
func (p Constant) At(int, *rand.Rand) float64 { return p.Watts }

// Square alternates between High for the first Duty fraction of every
// Period steps and Low for the rest.
type Square struct {
	Low, High float64
	Period    int
	Duty      float64
}

// At returns High for the first Duty fraction of each period and Low after.
func (p Square) At(k int, _ *rand.Rand) float64 {
	if float64(k%p.Period) < p.Duty*float64(p.Period) {
		return p.High
	}
	return p.Low
}

// Gaussian draws clamped normally distributed power.
type Gaussian struct {
	Mean, StdDev float64
	Min, Max     float64
}

// At draws from N(Mean, StdDev²) and clamps the sample to [Min, Max].
func (p Gaussian) At(_ int, rng *rand.Rand) float64 {
	if p.StdDev == 0 {
		return math.Min(p.Max, math.Max(p.Min, p.Mean))
	}
	return math.Min(p.Max, math.Max(p.Min, rng.NormFloat64()*p.StdDev+p.Mean))
}

// Explicit replays a recorded sequence, wrapping around at the end.
type Explicit struct{ Values []float64 }

// At returns Values[k], wrapping around past the end.
func (p Explicit) At(k int, _ *rand.Rand) float64 { return p.Values[k%len(p.Values)] }

// NewProfile builds the profile described by c. c must be valid.
func NewProfile(c CoreSpec) (Profile, error) {
	switch c.Profile {
	case "constant":
		return Constant{Watts: c.Params["watts"]}, nil
	case "square":
		return Square{
			Low:    c.Params["low"],
			High:   c.Params["high"],
			Period: int(c.Params["period"]),
			Duty:   c.duty(),
		}, nil
	case "gaussian":
		hi := math.Inf(1)
		if v, ok := c.Params["max"]; ok {
			hi = v
		}
		return Gaussian{Mean: c.Params["mean"], StdDev: c.Params["std_dev"], Min: c.Params["min"], Max: hi}, nil
	case "explicit":
		return Explicit{Values: append([]float64(nil), c.Values...)}, nil
	}
	return nil, fmt.Errorf("unknown power profile %q", c.Profile)
}

// Source produces the step-major power trace of a network window by window.
// Each core draws from its own RNG stream, so the trace does not depend on
// how it is split into windows.
type Source struct {
	cores    int
	profiles []Profile
	rngs     []*rand.Rand
	step     int
}

// NewSource validates spec and prepares per-core profiles seeded from seed.
func NewSource(spec *Spec, cores int, seed int64) (*Source, error) {
	if err := spec.Validate(cores); err != nil {
		return nil, fmt.Errorf("invalid power spec: %w", err)
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))
	src := &Source{
		cores:    cores,
		profiles: make([]Profile, cores),
		rngs:     make([]*rand.Rand, cores),
	}
	for c := 0; c < cores; c++ {
		profile, err := NewProfile(*spec.core(c))
		if err != nil {
			return nil, err
		}
		src.profiles[c] = profile
		src.rngs[c] = rng.ForSubsystem(sim.SubsystemCore(c))
	}
	return src, nil
}

// Cores returns the number of cores the source feeds.
func (s *Source) Cores() int { return s.cores }

// Step returns the number of steps produced so far.
func (s *Source) Step() int { return s.step }

// Next fills dst with the next len(dst)/cores steps of power and returns it.
// len(dst) must be a multiple of the core count.
func (s *Source) Next(dst []float64) []float64 {
	if len(dst)%s.cores != 0 {
		panic(fmt.Sprintf("Source.Next: len(dst)=%d is not a multiple of %d cores", len(dst), s.cores))
	}
	steps := len(dst) / s.cores
	for j := 0; j < steps; j++ {
		for c := 0; c < s.cores; c++ {
			dst[j*s.cores+c] = s.profiles[c].At(s.step+j, s.rngs[c])
		}
	}
	s.step += steps
	return dst
}

// Generate returns the first steps steps of the trace described by spec.
func Generate(spec *Spec, cores, steps int, seed int64) ([]float64, error) {
	src, err := NewSource(spec, cores, seed)
	if err != nil {
		return nil, err
	}
	return src.Next(make([]float64, cores*steps)), nil
}

package power

import (
	"fmt"
	"math"
)

// Spec describes the power dissipated by each core over time.
// Cores holds one profile per core; a single profile applies to every core.
type Spec struct {
	Cores []CoreSpec `yaml:"cores"`
}

// CoreSpec parameterizes one core's power profile.
//
// Profiles and their params:
//   - constant: watts
//   - square:   low, high, period (steps), duty (fraction of period at high, default 0.5)
//   - gaussian: mean, std_dev, min (default 0), max (default +Inf)
//   - explicit: Values, repeated cyclically
type CoreSpec struct {
	Profile string             `yaml:"profile"`
	Params  map[string]float64 `yaml:"params,omitempty"`
	Values  []float64          `yaml:"values,omitempty"`
}

var validProfiles = map[string]bool{
	"constant": true, "square": true, "gaussian": true, "explicit": true,
}

// requiredParams lists the params each profile cannot do without.
var requiredParams = map[string][]string{
	"constant": {"watts"},
	"square":   {"low", "high", "period"},
	"gaussian": {"mean", "std_dev"},
}

// Validate checks the spec against a network with the given number of cores.
func (s *Spec) Validate(cores int) error {
	if len(s.Cores) == 0 {
		return fmt.Errorf("power: at least one core profile required")
	}
	if len(s.Cores) != 1 && len(s.Cores) != cores {
		return fmt.Errorf("power: %d core profiles for %d cores; give one per core or a single shared profile", len(s.Cores), cores)
	}
	for i := range s.Cores {
		if err := validateCore(&s.Cores[i], fmt.Sprintf("power.cores[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func validateCore(c *CoreSpec, prefix string) error {
	if !validProfiles[c.Profile] {
		return fmt.Errorf("%s: unknown profile %q; valid: constant, square, gaussian, explicit", prefix, c.Profile)
	}
	for name, val := range c.Params {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%s.params.%s must be a finite number, got %f", prefix, name, val)
		}
	}
	for _, name := range requiredParams[c.Profile] {
		if _, ok := c.Params[name]; !ok {
			return fmt.Errorf("%s: profile %q requires params.%s", prefix, c.Profile, name)
		}
	}
	switch c.Profile {
	case "square":
		if c.Params["period"] < 1 {
			return fmt.Errorf("%s.params.period must be >= 1 step, got %f", prefix, c.Params["period"])
		}
		if duty, ok := c.Params["duty"]; ok && (duty < 0 || duty > 1) {
			return fmt.Errorf("%s.params.duty must be in [0, 1], got %f", prefix, duty)
		}
	case "gaussian":
		if c.Params["std_dev"] < 0 {
			return fmt.Errorf("%s.params.std_dev must be non-negative, got %f", prefix, c.Params["std_dev"])
		}
		if hi, ok := c.Params["max"]; ok && hi < c.Params["min"] {
			return fmt.Errorf("%s.params.max (%f) must be >= min (%f)", prefix, hi, c.Params["min"])
		}
	case "explicit":
		if len(c.Values) == 0 {
			return fmt.Errorf("%s: profile \"explicit\" requires values", prefix)
		}
		for j, v := range c.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%s.values[%d] must be a finite number, got %f", prefix, j, v)
			}
		}
	}
	return nil
}

// Mean returns the long-run average power of every core, used for
// steady-state estimates.
func (s *Spec) Mean(cores int) []float64 {
	means := make([]float64, cores)
	for c := range means {
		means[c] = s.core(c).mean()
	}
	return means
}

func (s *Spec) core(c int) *CoreSpec {
	if len(s.Cores) == 1 {
		return &s.Cores[0]
	}
	return &s.Cores[c]
}

func (c *CoreSpec) mean() float64 {
	switch c.Profile {
	case "constant":
		return c.Params["watts"]
	case "square":
		duty := c.duty()
		return duty*c.Params["high"] + (1-duty)*c.Params["low"]
	case "gaussian":
		// Clamping shifts the mean; the unclamped mean is the estimate.
		return c.Params["mean"]
	case "explicit":
		var sum float64
		for _, v := range c.Values {
			sum += v
		}
		return sum / float64(len(c.Values))
	}
	return 0
}

func (c *CoreSpec) duty() float64 {
	if d, ok := c.Params["duty"]; ok {
		return d
	}
	return 0.5
}

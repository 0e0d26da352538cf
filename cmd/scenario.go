package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thermal-sim/thermal-sim/sim"
	"github.com/thermal-sim/thermal-sim/sim/power"
)

// Scenario is the top-level run description loaded from YAML.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Scenario struct {
	Version string        `yaml:"version"`
	Name    string        `yaml:"name,omitempty"`
	Seed    int64         `yaml:"seed"`
	Steps   int           `yaml:"steps"`
	Window  int           `yaml:"window"`
	Circuit CircuitConfig `yaml:"circuit"`
	Config  SimConfig     `yaml:"config"`
	Power   power.Spec    `yaml:"power"`
}

// CircuitConfig is the YAML form of sim.Circuit. Conductance is given row by row.
type CircuitConfig struct {
	Cores       int         `yaml:"cores"`
	Capacitance []float64   `yaml:"capacitance"`
	Conductance [][]float64 `yaml:"conductance"`
}

// SimConfig is the YAML form of sim.Config.
type SimConfig struct {
	Ambient  float64 `yaml:"ambient"`
	TimeStep float64 `yaml:"time_step"`
}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if sc.Version == "" {
		sc.Version = "1"
	}
	return &sc, nil
}

// Validate checks the run parameters and the power spec. The circuit and
// config are validated when the operators are built.
func (sc *Scenario) Validate() error {
	if sc.Version != "1" {
		return fmt.Errorf("unsupported scenario version %q", sc.Version)
	}
	if sc.Steps < 1 {
		return fmt.Errorf("steps must be >= 1, got %d", sc.Steps)
	}
	if sc.Window < 1 {
		return fmt.Errorf("window must be >= 1, got %d", sc.Window)
	}
	if err := sc.Power.Validate(sc.Circuit.Cores); err != nil {
		return err
	}
	return nil
}

// BuildCircuit flattens the YAML circuit into a sim.Circuit.
func (c CircuitConfig) BuildCircuit() (sim.Circuit, error) {
	n := len(c.Capacitance)
	if len(c.Conductance) != n {
		return sim.Circuit{}, fmt.Errorf("%w: conductance has %d rows, want %d", sim.ErrInvalidCircuit, len(c.Conductance), n)
	}
	flat := make([]float64, 0, n*n)
	for i, row := range c.Conductance {
		if len(row) != n {
			return sim.Circuit{}, fmt.Errorf("%w: conductance row %d has %d entries, want %d", sim.ErrInvalidCircuit, i, len(row), n)
		}
		flat = append(flat, row...)
	}
	return sim.NewCircuit(c.Cores, c.Capacitance, flat), nil
}

// BuildConfig converts the YAML config into a sim.Config.
func (c SimConfig) BuildConfig() sim.Config {
	return sim.NewConfig(c.Ambient, c.TimeStep)
}

// Operators builds the modal operators for the scenario's network.
func (sc *Scenario) Operators() (*sim.Operators, error) {
	circuit, err := sc.Circuit.BuildCircuit()
	if err != nil {
		return nil, err
	}
	return sim.NewOperators(circuit, sc.Config.BuildConfig())
}

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thermal-sim/thermal-sim/sim"
	"github.com/thermal-sim/thermal-sim/sim/ensemble"
	"github.com/thermal-sim/thermal-sim/sim/power"
	"github.com/thermal-sim/thermal-sim/sim/trace"
)

var (
	scenarioPath string // YAML scenario file
	logLevel     string // Log verbosity level
	seed         int64  // Seed override for power noise
	steps        int    // Total steps override
	window       int    // Steps per Step call override
	members      int    // Independent power traces sharing one network
	workers      int    // Concurrent members (0 = all)
	traceLevel   string // none, windows, steps
	plotPath     string // Optional chart of core temperatures
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "thermsim",
	Short: "Transient simulator for RC thermal networks",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// RunOutput is the JSON document printed by `thermsim run`.
type RunOutput struct {
	Name        string         `json:"name,omitempty"`
	Cores       int            `json:"cores"`
	Nodes       int            `json:"nodes"`
	TimeStep    float64        `json:"time_step"`
	Ambient     float64        `json:"ambient"`
	Eigenvalues []float64      `json:"eigenvalues"`
	Members     []MemberOutput `json:"members"`
	WallTime    string         `json:"wall_time"`
}

// MemberOutput is the summary of one simulated power trace.
type MemberOutput struct {
	Name    string              `json:"name"`
	Seed    int64               `json:"seed"`
	Summary *trace.TraceSummary `json:"summary"`
	State   []float64           `json:"state"`
}

// loadScenario applies CLI overrides to the scenario file.
func loadScenario(cmd *cobra.Command) *Scenario {
	if scenarioPath == "" {
		logrus.Fatalf("Scenario file not provided (--scenario). Exiting.")
	}
	sc, err := LoadScenario(scenarioPath)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	if cmd.Flags().Changed("seed") {
		sc.Seed = seed
	}
	if cmd.Flags().Changed("steps") {
		sc.Steps = steps
	}
	if cmd.Flags().Changed("window") {
		sc.Window = window
	}
	if sc.Window == 0 {
		sc.Window = sc.Steps
	}
	return sc
}

// runScenario simulates every member of the scenario and builds the output.
func runScenario(sc *Scenario, members, workers int, level trace.TraceLevel) (*RunOutput, []*ensemble.Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if members < 1 {
		return nil, nil, fmt.Errorf("members must be >= 1, got %d", members)
	}
	start := time.Now()
	ops, err := sc.Operators()
	if err != nil {
		return nil, nil, err
	}

	ms := make([]ensemble.Member, members)
	for i := range ms {
		src, err := power.NewSource(&sc.Power, ops.Cores(), sc.Seed+int64(i))
		if err != nil {
			return nil, nil, err
		}
		ms[i] = ensemble.Member{Name: fmt.Sprintf("member_%d", i), Source: src}
	}
	results, err := ensemble.Run(ops, ms, ensemble.RunConfig{
		Steps:   sc.Steps,
		Window:  sc.Window,
		Trace:   level,
		Workers: workers,
	})
	if err != nil {
		return nil, nil, err
	}

	out := &RunOutput{
		Name:        sc.Name,
		Cores:       ops.Cores(),
		Nodes:       ops.Nodes(),
		TimeStep:    ops.Config().TimeStep,
		Ambient:     ops.Config().Ambient,
		Eigenvalues: ops.Eigenvalues(),
	}
	for i, res := range results {
		out.Members = append(out.Members, MemberOutput{
			Name:    res.Name,
			Seed:    sc.Seed + int64(i),
			Summary: res.Summary,
			State:   res.State,
		})
	}
	out.WallTime = time.Since(start).String()
	return out, results, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// runCmd executes the simulation described by a scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate the temperature of every core for a scenario",
	Run: func(cmd *cobra.Command, args []string) {
		sc := loadScenario(cmd)
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}
		level := trace.TraceLevel(traceLevel)
		if plotPath != "" {
			level = trace.TraceLevelSteps
		}

		logrus.Infof("Starting simulation: %d steps in windows of %d, %d member(s)", sc.Steps, sc.Window, members)
		out, results, err := runScenario(sc, members, workers, level)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		if plotPath != "" {
			title := sc.Name
			if title == "" {
				title = "core temperatures"
			}
			if err := savePlot(plotPath, title, results[0].Trace); err != nil {
				logrus.Fatalf("%v", err)
			}
			logrus.Infof("Wrote chart of %s to %s", results[0].Name, plotPath)
		}
		if err := writeJSON(os.Stdout, out); err != nil {
			logrus.Fatalf("Failed to write output: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// SteadyOutput is the JSON document printed by `thermsim steady`.
type SteadyOutput struct {
	Power       []float64 `json:"power"`
	Temperature []float64 `json:"temperature"`
}

func steadyState(sc *Scenario) (*SteadyOutput, error) {
	ops, err := sc.Operators()
	if err != nil {
		return nil, err
	}
	if err := sc.Power.Validate(ops.Cores()); err != nil {
		return nil, err
	}
	p := sc.Power.Mean(ops.Cores())
	temps, err := ops.SteadyState(p)
	if err != nil {
		return nil, err
	}
	return &SteadyOutput{Power: p, Temperature: temps}, nil
}

// steadyCmd prints the temperature each core settles at under its mean power
var steadyCmd = &cobra.Command{
	Use:   "steady",
	Short: "Compute steady-state core temperatures for the scenario's mean power",
	Run: func(cmd *cobra.Command, args []string) {
		sc := loadScenario(cmd)
		out, err := steadyState(sc)
		if errors.Is(err, sim.ErrNoSteadyState) {
			logrus.Fatalf("Steady state failed: %v (every node needs a conductive path to ground)", err)
		}
		if err != nil {
			logrus.Fatalf("Steady state failed: %v", err)
		}
		if err := writeJSON(os.Stdout, out); err != nil {
			logrus.Fatalf("Failed to write output: %v", err)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVarP(&scenarioPath, "scenario", "f", "", "Path to the YAML scenario file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for power noise (overrides the scenario)")
	runCmd.Flags().IntVar(&steps, "steps", 0, "Total number of time steps (overrides the scenario)")
	runCmd.Flags().IntVar(&window, "window", 0, "Steps per simulation window (overrides the scenario)")
	runCmd.Flags().IntVar(&members, "members", 1, "Independent power traces (seeds seed..seed+members-1)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Members simulated concurrently (0 = all)")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelWindows), "Trace level (none, windows, steps)")
	runCmd.Flags().StringVar(&plotPath, "plot", "", "Write a chart of the first member's core temperatures (.png, .svg, .pdf)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(steadyCmd)
}


// Package ensemble drives thermal simulations window by window and runs
// independent power traces concurrently over one shared operator set.
package ensemble

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/thermal-sim/thermal-sim/sim"
	"github.com/thermal-sim/thermal-sim/sim/power"
	"github.com/thermal-sim/thermal-sim/sim/trace"
)

// RunConfig controls how a trace is fed to the stepping engine.
type RunConfig struct {
	Steps   int              // total steps to simulate (must be >= 1)
	Window  int              // steps per Step call (must be >= 1)
	Trace   trace.TraceLevel // what to keep per window
	Workers int              // concurrent members in Run (0 = one per member)
}

// Member is one power trace of an ensemble.
type Member struct {
	Name   string
	Source *power.Source
}

// Result is the outcome of one simulated trace.
type Result struct {
	Name    string
	Trace   *trace.TemperatureTrace
	Summary *trace.TraceSummary
	State   []float64 // temperature of every node at the end of the run
}

func (c RunConfig) validate() error {
	if c.Steps < 1 {
		return fmt.Errorf("steps must be >= 1, got %d", c.Steps)
	}
	if c.Window < 1 {
		return fmt.Errorf("window must be >= 1, got %d", c.Window)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if !trace.IsValidTraceLevel(string(c.Trace)) {
		return fmt.Errorf("unknown trace level %q", c.Trace)
	}
	return nil
}

// Simulate runs one trace from ambient temperature. The last window is
// shortened so exactly config.Steps steps are simulated.
func Simulate(ops *sim.Operators, src *power.Source, config RunConfig) (*Result, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}
	if src.Cores() != ops.Cores() {
		return nil, fmt.Errorf("power source feeds %d cores, network has %d", src.Cores(), ops.Cores())
	}
	cores := ops.Cores()
	analysis := sim.NewStepper(ops)
	tr := trace.NewTemperatureTrace(trace.TraceConfig{
		Level:    config.Trace,
		Cores:    cores,
		TimeStep: ops.Config().TimeStep,
	})

	p := make([]float64, cores*config.Window)
	q := make([]float64, cores*config.Window)
	for done := 0; done < config.Steps; {
		n := min(config.Window, config.Steps-done)
		src.Next(p[:cores*n])
		analysis.Step(p[:cores*n], q[:cores*n])
		tr.Record(q[:cores*n])
		done += n
		logrus.Debugf("[step %07d] window of %d steps done", done, n)
	}

	return &Result{
		Trace:   tr,
		Summary: trace.Summarize(tr),
		State:   analysis.State(nil),
	}, nil
}

// Run simulates every member concurrently. Each member gets its own
// Analysis; the operators are shared read-only. Results are returned in
// member order.
func Run(ops *sim.Operators, members []Member, config RunConfig) ([]*Result, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}
	workers := config.Workers
	if workers == 0 || workers > len(members) {
		workers = len(members)
	}

	results := make([]*Result, len(members))
	errs := make([]error, len(members))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := Simulate(ops, members[i].Source, config)
				if err != nil {
					errs[i] = fmt.Errorf("member %q: %w", members[i].Name, err)
					continue
				}
				res.Name = members[i].Name
				results[i] = res
			}
		}()
	}
	for i := range members {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	logrus.Infof("ensemble of %d members finished (%d workers)", len(members), workers)
	return results, nil
}

package trace

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// TraceLevel controls the verbosity of temperature tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelWindows keeps per-window statistics only.
	TraceLevelWindows TraceLevel = "windows"
	// TraceLevelSteps additionally keeps every step's temperatures.
	TraceLevelSteps TraceLevel = "steps"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:    true,
	TraceLevelWindows: true,
	TraceLevelSteps:   true,
	"":                true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level    TraceLevel
	Cores    int
	TimeStep float64 // seconds per step, for converting steps to time
}

// TemperatureTrace collects window records during a simulation.
type TemperatureTrace struct {
	Config  TraceConfig
	Windows []WindowRecord
	steps   int
}

// NewTemperatureTrace creates a TemperatureTrace ready for recording.
func NewTemperatureTrace(config TraceConfig) *TemperatureTrace {
	return &TemperatureTrace{
		Config:  config,
		Windows: make([]WindowRecord, 0),
	}
}

// Enabled reports whether Record keeps anything.
func (tt *TemperatureTrace) Enabled() bool {
	return tt != nil && tt.Config.Level != TraceLevelNone && tt.Config.Level != ""
}

// Steps returns the number of steps recorded so far.
func (tt *TemperatureTrace) Steps() int { return tt.steps }

// Record appends the statistics of one window of step-major temperatures.
func (tt *TemperatureTrace) Record(temperatures []float64) {
	if !tt.Enabled() {
		return
	}
	cores := tt.Config.Cores
	if cores <= 0 || len(temperatures) == 0 || len(temperatures)%cores != 0 {
		panic(fmt.Sprintf("TemperatureTrace.Record: %d values for %d cores", len(temperatures), cores))
	}
	steps := len(temperatures) / cores
	record := WindowRecord{
		Index:     len(tt.Windows),
		StartStep: tt.steps,
		Steps:     steps,
		Peak:      make([]float64, cores),
		Mean:      make([]float64, cores),
		Final:     append([]float64(nil), temperatures[len(temperatures)-cores:]...),
	}
	column := make([]float64, steps)
	for c := 0; c < cores; c++ {
		for j := range column {
			column[j] = temperatures[j*cores+c]
		}
		record.Peak[c] = floats.Max(column)
		record.Mean[c] = floats.Sum(column) / float64(steps)
	}
	if tt.Config.Level == TraceLevelSteps {
		record.Temperatures = append([]float64(nil), temperatures...)
	}
	tt.Windows = append(tt.Windows, record)
	tt.steps += steps
}

// Series returns the time axis and core c's temperature at every recorded
// step. It requires TraceLevelSteps; otherwise both slices are empty.
func (tt *TemperatureTrace) Series(c int) (times, temps []float64) {
	cores := tt.Config.Cores
	for _, w := range tt.Windows {
		for j := 0; j < len(w.Temperatures)/cores; j++ {
			times = append(times, float64(w.StartStep+j+1)*tt.Config.TimeStep)
			temps = append(temps, w.Temperatures[j*cores+c])
		}
	}
	return times, temps
}

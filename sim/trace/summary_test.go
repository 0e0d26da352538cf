package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	tt := NewTemperatureTrace(TraceConfig{Level: TraceLevelWindows, Cores: 2})

	// WHEN summarized
	summary := Summarize(tt)

	// THEN all fields are zero
	assert.Equal(t, &TraceSummary{}, summary)
	assert.Equal(t, &TraceSummary{}, Summarize(nil))
}

func TestSummarize_PopulatedTrace_AggregatesWindows(t *testing.T) {
	// GIVEN windows of different lengths
	tt := NewTemperatureTrace(TraceConfig{Level: TraceLevelWindows, Cores: 2, TimeStep: 0.1})
	tt.Record([]float64{10, 30})                  // 1 step
	tt.Record([]float64{20, 25, 40, 20, 30, 22}) // 3 steps

	// WHEN summarized
	s := Summarize(tt)

	// THEN statistics are step-weighted and per core
	assert.Equal(t, 4, s.TotalSteps)
	assert.Equal(t, 2, s.Windows)
	assert.InDelta(t, 0.4, s.Duration, 1e-12)
	assert.Equal(t, []float64{40, 30}, s.Peak)
	assert.InDeltaSlice(t, []float64{25, 24.25}, s.Mean, 1e-12)
	assert.Equal(t, []float64{30, 22}, s.Final)
	assert.Equal(t, 0, s.HottestCore)
	assert.Equal(t, 40.0, s.PeakOverall)
}

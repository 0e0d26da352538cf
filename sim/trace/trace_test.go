package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidTraceLevel(t *testing.T) {
	for _, level := range []string{"", "none", "windows", "steps"} {
		assert.True(t, IsValidTraceLevel(level), level)
	}
	assert.False(t, IsValidTraceLevel("decisions"))
}

func TestRecord_DisabledTrace_KeepsNothing(t *testing.T) {
	tt := NewTemperatureTrace(TraceConfig{Level: TraceLevelNone, Cores: 1})
	tt.Record([]float64{1, 2})
	assert.Empty(t, tt.Windows)

	var nilTrace *TemperatureTrace
	assert.False(t, nilTrace.Enabled())
	assert.NotPanics(t, func() { nilTrace.Record([]float64{1}) })
}

func TestRecord_WindowStatistics(t *testing.T) {
	// GIVEN two cores and a three-step window
	tt := NewTemperatureTrace(TraceConfig{Level: TraceLevelWindows, Cores: 2, TimeStep: 0.5})

	// WHEN the window is recorded
	tt.Record([]float64{
		10, 20,
		14, 18,
		12, 16,
	})

	// THEN per-core peak, mean and final are kept without raw values
	require.Len(t, tt.Windows, 1)
	w := tt.Windows[0]
	assert.Equal(t, 0, w.StartStep)
	assert.Equal(t, 3, w.Steps)
	assert.Equal(t, []float64{14, 20}, w.Peak)
	assert.Equal(t, []float64{12, 18}, w.Mean)
	assert.Equal(t, []float64{12, 16}, w.Final)
	assert.Nil(t, w.Temperatures)
	assert.Equal(t, 3, tt.Steps())
}

func TestRecord_StepsLevel_KeepsSeries(t *testing.T) {
	tt := NewTemperatureTrace(TraceConfig{Level: TraceLevelSteps, Cores: 2, TimeStep: 0.5})
	window := []float64{1, 2, 3, 4}
	tt.Record(window)
	tt.Record([]float64{5, 6})
	window[0] = 99 // records must not alias the caller's buffer

	times, temps := tt.Series(1)
	assert.Equal(t, []float64{0.5, 1.0, 1.5}, times)
	assert.Equal(t, []float64{2, 4, 6}, temps)
	assert.Equal(t, 2, tt.Windows[1].StartStep)
	assert.Equal(t, 1.0, tt.Windows[0].Temperatures[0])
}

func TestRecord_MisalignedWindow_Panics(t *testing.T) {
	tt := NewTemperatureTrace(TraceConfig{Level: TraceLevelWindows, Cores: 2})
	assert.Panics(t, func() { tt.Record([]float64{1, 2, 3}) })
}

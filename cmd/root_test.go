package cmd

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermal-sim/thermal-sim/sim"
	"github.com/thermal-sim/thermal-sim/sim/trace"
)

func TestRunScenario_SingleNode_MatchesAnalyticSolution(t *testing.T) {
	// GIVEN C=2, G=0.5, 3 W for 10 steps of 0.1 s in windows of 4
	sc, err := LoadScenario(writeScenario(t, minimalScenario))
	require.NoError(t, err)

	// WHEN run
	out, results, err := runScenario(sc, 1, 0, trace.TraceLevelSteps)
	require.NoError(t, err)

	// THEN the final temperature follows 20 + 6·(1 - exp(-t/4))
	require.Len(t, out.Members, 1)
	want := 20 + 6*(1-math.Exp(-1.0/4))
	assert.InDelta(t, want, out.Members[0].Summary.Final[0], 1e-9)
	assert.Equal(t, 10, out.Members[0].Summary.TotalSteps)
	assert.Equal(t, 3, out.Members[0].Summary.Windows)
	assert.Equal(t, 1, out.Nodes)

	_, temps := results[0].Trace.Series(0)
	assert.Len(t, temps, 10)
}

func TestRunScenario_Members_UseConsecutiveSeeds(t *testing.T) {
	sc, err := LoadScenario(quadCorePath)
	require.NoError(t, err)
	sc.Steps = 50

	out, _, err := runScenario(sc, 3, 2, trace.TraceLevelWindows)
	require.NoError(t, err)

	require.Len(t, out.Members, 3)
	for i, m := range out.Members {
		assert.Equal(t, sc.Seed+int64(i), m.Seed)
		assert.Len(t, m.State, 6)
	}
	assert.NotEqual(t, out.Members[0].Summary.Final[1], out.Members[1].Summary.Final[1],
		"gaussian core must differ across seeds")
}

func TestRunScenario_Invalid_ReturnsError(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, minimalScenario))
	require.NoError(t, err)

	_, _, err = runScenario(sc, 0, 0, trace.TraceLevelWindows)
	assert.Error(t, err)

	sc.Config.TimeStep = 0
	_, _, err = runScenario(sc, 1, 0, trace.TraceLevelWindows)
	assert.ErrorIs(t, err, sim.ErrInvalidConfig)
}

func TestSteadyState_QuadCore_AboveAmbient(t *testing.T) {
	sc, err := LoadScenario(quadCorePath)
	require.NoError(t, err)

	out, err := steadyState(sc)
	require.NoError(t, err)

	assert.Equal(t, []float64{7, 6, 4, 4.2}, out.Power)
	require.Len(t, out.Temperature, 4)
	for c, temp := range out.Temperature {
		assert.Greater(t, temp, 318.15, "core %d", c)
	}
	assert.Greater(t, out.Temperature[0], out.Temperature[2], "hotter core dissipates more")
}

func TestWriteJSON_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, SteadyOutput{Power: []float64{1}, Temperature: []float64{2}}))

	var got SteadyOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []float64{2}, got.Temperature)
	assert.Contains(t, buf.String(), `"temperature"`)
}

func TestSavePlot_WritesImage(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, minimalScenario))
	require.NoError(t, err)
	_, results, err := runScenario(sc, 1, 0, trace.TraceLevelSteps)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "temps.png")
	require.NoError(t, savePlot(path, "single node", results[0].Trace))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

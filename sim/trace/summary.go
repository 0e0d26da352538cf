package trace

import "gonum.org/v1/gonum/floats"

// TraceSummary aggregates statistics from a TemperatureTrace.
type TraceSummary struct {
	TotalSteps  int       `json:"total_steps"`
	Windows     int       `json:"windows"`
	Duration    float64   `json:"duration_s"`
	Peak        []float64 `json:"peak"`  // per core
	Mean        []float64 `json:"mean"`  // per core, step-weighted
	Final       []float64 `json:"final"` // per core
	HottestCore int       `json:"hottest_core"`
	PeakOverall float64   `json:"peak_overall"`
}

// Summarize computes aggregate statistics from a TemperatureTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(tt *TemperatureTrace) *TraceSummary {
	summary := &TraceSummary{}
	if tt == nil || len(tt.Windows) == 0 {
		return summary
	}

	cores := tt.Config.Cores
	summary.Windows = len(tt.Windows)
	summary.Peak = append([]float64(nil), tt.Windows[0].Peak...)
	summary.Mean = make([]float64, cores)
	for _, w := range tt.Windows {
		summary.TotalSteps += w.Steps
		for c := 0; c < cores; c++ {
			if w.Peak[c] > summary.Peak[c] {
				summary.Peak[c] = w.Peak[c]
			}
			summary.Mean[c] += w.Mean[c] * float64(w.Steps)
		}
	}
	floats.Scale(1/float64(summary.TotalSteps), summary.Mean)
	summary.Final = append([]float64(nil), tt.Windows[len(tt.Windows)-1].Final...)
	summary.HottestCore = floats.MaxIdx(summary.Peak)
	summary.PeakOverall = summary.Peak[summary.HottestCore]
	summary.Duration = float64(summary.TotalSteps) * tt.Config.TimeStep

	return summary
}

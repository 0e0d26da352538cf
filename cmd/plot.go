package cmd

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/thermal-sim/thermal-sim/sim/trace"
)

// savePlot renders every core's temperature over time. The trace must have
// been recorded at trace.TraceLevelSteps. The image format follows the file
// extension (.png, .svg, .pdf, ...).
func savePlot(path, title string, tr *trace.TemperatureTrace) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "temperature"
	p.Add(plotter.NewGrid())

	for c := 0; c < tr.Config.Cores; c++ {
		times, temps := tr.Series(c)
		pts := make(plotter.XYs, len(times))
		for i := range pts {
			pts[i].X = times[i]
			pts[i].Y = temps[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("plot core %d: %w", c, err)
		}
		line.Color = plotutil.Color(c)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("core %d", c), line)
	}

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %q: %w", path, err)
	}
	return nil
}

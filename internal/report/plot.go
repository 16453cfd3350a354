package report

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var ErrNoData = errors.New("report: nothing to plot")

// PlotCosts saves a line chart of seam energy against removal index as a
// PNG (or any format plot.Save infers from the extension).
func PlotCosts(costs []float64, title, path string) error {
	if len(costs) == 0 {
		return ErrNoData
	}
	if !finite(costs) {
		return fmt.Errorf("report: non-finite seam cost in %q", title)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Seam #"
	p.Y.Label.Text = "Energy"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(costs))
	for i, c := range costs {
		pts[i] = plotter.XY{X: float64(i + 1), Y: c}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("report: line: %w", err)
	}
	line.Width = vg.Points(1)
	p.Add(line)

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("report: save plot %s: %w", path, err)
	}
	return nil
}

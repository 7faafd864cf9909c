package report

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/platoon/internal/fsutil"
	"github.com/banshee-data/platoon/internal/sim"
	"github.com/banshee-data/platoon/internal/trajectory"
	"github.com/banshee-data/platoon/internal/vehicle"
)

// PathPlotSize is the edge length of the square path plot.
const PathPlotSize = 8 * vg.Inch

// PathPlot draws the reference path and every vehicle trail, lead first,
// and writes the plot to w as PNG.
func PathPlot(w io.Writer, path []trajectory.Sample, trails [][]vehicle.State) error {
	p := plot.New()
	p.Title.Text = "Platoon paths"
	p.X.Label.Text = "East (m)"
	p.Y.Label.Text = "North (m)"
	p.Add(plotter.NewGrid())

	if len(path) > 0 {
		pts := make(plotter.XYs, len(path))
		for i, s := range path {
			pts[i] = plotter.XY{X: s.X, Y: s.Y}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("reference path: %w", err)
		}
		line.Color = color.Gray{Y: 160}
		line.Width = vg.Points(3)
		p.Add(line)
		p.Legend.Add("recorded path", line)
	}

	colors := newPalette(len(trails))
	for i, trail := range trails {
		if len(trail) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(trail))
		for j, s := range trail {
			pts[j] = plotter.XY{X: s.X, Y: s.Y}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("trail of %s: %w", sim.VehicleName(i), err)
		}
		line.Color = colors.at(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(sim.VehicleName(i), line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	wt, err := p.WriterTo(PathPlotSize, PathPlotSize, "png")
	if err != nil {
		return fmt.Errorf("failed to render path plot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write path plot: %w", err)
	}
	return nil
}

// WritePathPlot renders PathPlot into the named file on fsys.
func WritePathPlot(fsys fsutil.FileSystem, name string, path []trajectory.Sample, trails [][]vehicle.State) error {
	f, err := fsys.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if err := PathPlot(f, path, trails); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

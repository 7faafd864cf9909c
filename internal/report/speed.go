package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/platoon/internal/fsutil"
	"github.com/banshee-data/platoon/internal/sim"
	"github.com/banshee-data/platoon/internal/units"
	"github.com/banshee-data/platoon/internal/vehicle"
)

// SpeedChart writes an HTML line chart of each vehicle's speed against
// simulation time, converted to unit.
func SpeedChart(w io.Writer, trails [][]vehicle.State, unit string) error {
	if !units.IsValid(unit) {
		return fmt.Errorf("invalid units %q; must be one of: %s", unit, units.GetValidUnitsString())
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Platoon speed", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Platoon speed", Subtitle: fmt.Sprintf("vehicles=%d units=%s", len(trails), units.Label(unit))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "t (s)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: fmt.Sprintf("speed (%s)", units.Label(unit)), NameLocation: "middle", NameGap: 40}),
	)

	colors := newPalette(len(trails))
	for i, trail := range trails {
		data := make([]opts.LineData, len(trail))
		for j, s := range trail {
			data[j] = opts.LineData{Value: []interface{}{s.SimTime, units.ConvertSpeed(s.Velocity, unit)}}
		}
		line.AddSeries(sim.VehicleName(i), data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colors.hex(i)}),
		)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render speed chart: %w", err)
	}
	return nil
}

// WriteSpeedChart renders SpeedChart into the named file on fsys.
func WriteSpeedChart(fsys fsutil.FileSystem, name string, trails [][]vehicle.State, unit string) error {
	f, err := fsys.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if err := SpeedChart(f, trails, unit); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

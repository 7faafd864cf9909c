package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/platoon/internal/config"
	"github.com/banshee-data/platoon/internal/fsutil"
	"github.com/banshee-data/platoon/internal/monitoring"
	"github.com/banshee-data/platoon/internal/report"
	"github.com/banshee-data/platoon/internal/sim"
	"github.com/banshee-data/platoon/internal/telemetry"
	"github.com/banshee-data/platoon/internal/timeutil"
	"github.com/banshee-data/platoon/internal/units"
	"github.com/banshee-data/platoon/internal/vehicle"
)

// traceRate is the rate at which trails are kept for plotting, Hz.
const traceRate = 10.0

type options struct {
	LogPath  string
	Tuning   *config.TuningConfig
	Steps    int
	Realtime bool
	DBPath   string
	PlotDir  string
	Units    string
	Clock    timeutil.Clock
	FS       fsutil.FileSystem
}

// run loads the log, drives the platoon and writes whatever outputs were
// requested. Telemetry already buffered is flushed even when the run is
// interrupted.
func run(ctx context.Context, o options, out io.Writer) (err error) {
	lead := vehicle.NewReplayEstimator(vehicle.EstimatorConfigFromTuning(o.Tuning))
	if err := lead.LoadFrom(o.FS, o.LogPath); err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	monitoring.Logf("loaded %d samples (%.1fs) from %s", lead.Log().Len(), lead.Log().Duration(), o.LogPath)

	cfg := sim.ConfigFromTuning(o.Tuning)
	p := sim.NewPlatoon(cfg, lead)

	var trace *sim.Trace
	if o.PlotDir != "" {
		trace = sim.NewTrace(int(math.Round(1 / (traceRate * cfg.Period))))
		p.AddObserver(trace)
	}

	if o.DBPath != "" {
		store, runID, rec, serr := startRecording(o, cfg, lead.Log().Len())
		if serr != nil {
			return serr
		}
		p.AddObserver(rec)
		defer func() {
			err = finishRecording(store, runID, rec, p.StepCount(), err)
		}()
	}

	start := o.Clock.Now()
	if o.Realtime {
		err = p.Run(ctx, o.Clock, o.Steps)
	} else {
		err = p.RunSteps(ctx, o.Steps)
	}
	if err != nil {
		return err
	}

	if trace != nil {
		if err := writeReports(o.FS, o.PlotDir, p, trace, o.Units); err != nil {
			return err
		}
	}
	return printSummary(out, p, o.Units, o.Clock.Since(start))
}

func startRecording(o options, cfg sim.Config, samples int) (*telemetry.Store, uuid.UUID, *telemetry.Recorder, error) {
	store, err := telemetry.Open(o.DBPath)
	if err != nil {
		return nil, uuid.Nil, nil, err
	}
	runID, err := store.BeginRun(telemetry.RunMeta{
		LogPath:   o.LogPath,
		Period:    cfg.Period,
		Followers: cfg.Followers,
		Samples:   samples,
	})
	if err != nil {
		store.Close()
		return nil, uuid.Nil, nil, err
	}
	return store, runID, store.Recorder(runID, o.Tuning.GetTelemetryBatchSize()), nil
}

// finishRecording flushes and closes the store, returning runErr if set or
// else the first error hit while finishing.
func finishRecording(store *telemetry.Store, runID uuid.UUID, rec *telemetry.Recorder, steps int, runErr error) error {
	errs := []error{runErr}
	if err := rec.Flush(); err != nil {
		errs = append(errs, err)
	} else if err := store.FinishRun(runID, steps); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, store.Close())
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	monitoring.Logf("recorded run %s: %d states", runID, rec.Written())
	return nil
}

func writeReports(fsys fsutil.FileSystem, dir string, p *sim.Platoon, trace *sim.Trace, unit string) error {
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	pathFile := filepath.Join(dir, "paths.png")
	if err := report.WritePathPlot(fsys, pathFile, p.Path(), trace.Trails()); err != nil {
		return err
	}
	speedFile := filepath.Join(dir, "speed.html")
	if err := report.WriteSpeedChart(fsys, speedFile, trace.Trails(), unit); err != nil {
		return err
	}
	monitoring.Logf("wrote %s and %s", pathFile, speedFile)
	return nil
}

func printSummary(out io.Writer, p *sim.Platoon, unit string, wall time.Duration) error {
	fmt.Fprintf(out, "%d steps, %.2fs simulated in %s\n", p.StepCount(), p.Lead().SimTime(), wall.Round(time.Millisecond))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "vehicle\tx (m)\ty (m)\tspeed (%s)\theading (deg)\n", units.Label(unit))
	for i, s := range p.States() {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.1f\n",
			sim.VehicleName(i), s.X, s.Y, units.ConvertSpeed(s.Velocity, unit), s.Heading*180/math.Pi)
	}
	return tw.Flush()
}

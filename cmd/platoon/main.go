// Command platoon replays a recorded INS trajectory as the lead vehicle of a
// simulated platoon and reports how the followers tracked it.
//
// Usage:
//
//	platoon -log ins.csv [-followers 2] [-config tuning.json] [-db runs.db] [-plot-dir out]
//	platoon ins.csv [followers]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/banshee-data/platoon/internal/config"
	"github.com/banshee-data/platoon/internal/fsutil"
	"github.com/banshee-data/platoon/internal/monitoring"
	"github.com/banshee-data/platoon/internal/timeutil"
	"github.com/banshee-data/platoon/internal/units"
	"github.com/banshee-data/platoon/internal/version"
)

var (
	logPath     = flag.String("log", "", "INS trajectory log (CSV, 15 fields per row)")
	followers   = flag.Int("followers", 2, "Number of simulated followers (overrides config)")
	configPath  = flag.String("config", "", "Tuning config JSON (default "+config.DefaultConfigPath+" when present)")
	steps       = flag.Int("steps", 0, "Stop after this many steps (0 runs until the log is exhausted)")
	realtime    = flag.Bool("realtime", false, "Pace steps to wall-clock time")
	dbPath      = flag.String("db", "", "Record the run to this sqlite database")
	plotDir     = flag.String("plot-dir", "", "Write paths.png and speed.html to this directory")
	speedUnits  = flag.String("units", units.MPS, "Speed units for the summary and charts ("+units.GetValidUnitsString()+")")
	verbose     = flag.Bool("verbose", false, "Log per-run diagnostics")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	monitoring.SetVerbose(*verbose)

	opts, err := optionsFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("interrupted")
			return
		}
		log.Fatalf("platoon: %v", err)
	}
}

// loadTuning reads the -config file, falling back to the installed defaults
// file and then to the built-in defaults.
func loadTuning(path string) (*config.TuningConfig, error) {
	if path != "" {
		return config.LoadTuningConfig(path)
	}
	tuning, found, err := config.LoadDefaultConfig()
	if err != nil {
		return nil, err
	}
	if found != "" {
		monitoring.Verbosef("tuning: using %s", found)
	}
	return tuning, nil
}

// optionsFromFlags validates the parsed flags. The log path and follower
// count may also be given positionally.
func optionsFromFlags() (options, error) {
	path := *logPath
	if path == "" && flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	if path == "" {
		return options{}, errors.New("a trajectory log is required (-log)")
	}

	n := *followers
	followersSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "followers" {
			followersSet = true
		}
	})
	if !followersSet && flag.NArg() > 1 {
		v, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			return options{}, fmt.Errorf("invalid follower count %q: %w", flag.Arg(1), err)
		}
		n, followersSet = v, true
	}

	tuning, err := loadTuning(*configPath)
	if err != nil {
		return options{}, err
	}
	if followersSet {
		tuning.Followers = &n
	}
	if err := tuning.Validate(); err != nil {
		return options{}, err
	}

	if !units.IsValid(*speedUnits) {
		return options{}, fmt.Errorf("invalid units %q; must be one of: %s", *speedUnits, units.GetValidUnitsString())
	}
	if *steps < 0 {
		return options{}, fmt.Errorf("steps must be non-negative, got %d", *steps)
	}

	return options{
		LogPath:  path,
		Tuning:   tuning,
		Steps:    *steps,
		Realtime: *realtime,
		DBPath:   *dbPath,
		PlotDir:  *plotDir,
		Units:    *speedUnits,
		Clock:    timeutil.RealClock{},
		FS:       fsutil.OSFileSystem{},
	}, nil
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/platoon/internal/config"
	"github.com/banshee-data/platoon/internal/units"
)

// TestFlagDefaults verifies the documented defaults of the command-line flags.
func TestFlagDefaults(t *testing.T) {
	if *logPath != "" {
		t.Errorf("expected -log default to be empty, got %q", *logPath)
	}
	if *followers != 2 {
		t.Errorf("expected -followers default to be 2, got %d", *followers)
	}
	if *steps != 0 {
		t.Errorf("expected -steps default to be 0, got %d", *steps)
	}
	if *realtime {
		t.Error("expected -realtime default to be false")
	}
	if *speedUnits != units.MPS {
		t.Errorf("expected -units default to be %q, got %q", units.MPS, *speedUnits)
	}
}

// TestOptionsFromFlags_RequiresLog verifies that a run without a log is
// rejected before anything is loaded.
func TestOptionsFromFlags_RequiresLog(t *testing.T) {
	if _, err := optionsFromFlags(); err == nil {
		t.Fatal("expected an error without -log")
	}
}

// TestLoadTuning_DefaultsFile verifies that without -config the repository's
// defaults file is used, and that an explicit path takes precedence.
func TestLoadTuning_DefaultsFile(t *testing.T) {
	tuning, err := loadTuning("")
	if err != nil {
		t.Fatalf("loadTuning: %v", err)
	}
	if tuning.Period == nil {
		t.Fatal("expected the defaults file to set period explicitly")
	}
	if got, want := tuning.GetPeriod(), config.DefaultTuningConfig().GetPeriod(); got != want {
		t.Errorf("period = %v, want %v", got, want)
	}

	path := filepath.Join(t.TempDir(), "tuning.json")
	if err := os.WriteFile(path, []byte(`{"followers": 7}`), 0644); err != nil {
		t.Fatal(err)
	}
	tuning, err = loadTuning(path)
	if err != nil {
		t.Fatalf("loadTuning(%s): %v", path, err)
	}
	if tuning.GetFollowers() != 7 {
		t.Errorf("followers = %d, want 7", tuning.GetFollowers())
	}

	if _, err := loadTuning(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing -config file")
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTuningConfig(t *testing.T) {
	cfg := DefaultTuningConfig()

	if cfg.Period == nil || *cfg.Period != 0.02 {
		t.Errorf("Expected Period 0.02, got %v", cfg.Period)
	}
	if cfg.HistoryCapacity == nil || *cfg.HistoryCapacity != 100 {
		t.Errorf("Expected HistoryCapacity 100, got %v", cfg.HistoryCapacity)
	}
	if cfg.HardBrakeDecel == nil || *cfg.HardBrakeDecel != -5.0 {
		t.Errorf("Expected HardBrakeDecel -5.0, got %v", cfg.HardBrakeDecel)
	}

	if cfg.GetSamplingInterval() != 0.5 {
		t.Errorf("GetSamplingInterval() = %f, want 0.5", cfg.GetSamplingInterval())
	}
	if cfg.GetLookAhead() != 5.0 {
		t.Errorf("GetLookAhead() = %f, want 5.0", cfg.GetLookAhead())
	}
	if cfg.GetSteeringLimitDeg() != 30.0 {
		t.Errorf("GetSteeringLimitDeg() = %f, want 30.0", cfg.GetSteeringLimitDeg())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestEmptyTuningConfig_Getters(t *testing.T) {
	cfg := EmptyTuningConfig()

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"period", cfg.GetPeriod(), 0.02},
		{"path_spacing", cfg.GetPathSpacing(), 2.0},
		{"measurement_noise", cfg.GetMeasurementNoise(), 0.5},
		{"process_noise", cfg.GetProcessNoise(), 0.1},
		{"initial_covariance", cfg.GetInitialCovariance(), 0.1},
		{"heading_min_speed", cfg.GetHeadingMinSpeed(), 0.5},
		{"wheelbase", cfg.GetWheelbase(), 2.5},
		{"inter_vehicle_time", cfg.GetInterVehicleTime(), 3.0},
		{"stop_distance", cfg.GetStopDistance(), 5.0},
		{"gain_distance", cfg.GetGainDistance(), 0.05},
		{"gain_velocity", cfg.GetGainVelocity(), 0.4},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if cfg.GetFollowers() != 2 {
		t.Errorf("GetFollowers() = %d, want 2", cfg.GetFollowers())
	}
	if cfg.GetTelemetryBatchSize() != 500 {
		t.Errorf("GetTelemetryBatchSize() = %d, want 500", cfg.GetTelemetryBatchSize())
	}
}

func TestLoadTuningConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.json")

	testJSON := `{
  "period": 0.05,
  "followers": 4,
  "stop_distance": 8.0
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadTuningConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GetPeriod() != 0.05 {
		t.Errorf("GetPeriod() = %f, want 0.05", cfg.GetPeriod())
	}
	if cfg.GetFollowers() != 4 {
		t.Errorf("GetFollowers() = %d, want 4", cfg.GetFollowers())
	}
	if cfg.GetStopDistance() != 8.0 {
		t.Errorf("GetStopDistance() = %f, want 8.0", cfg.GetStopDistance())
	}
	// Omitted fields keep defaults
	if cfg.Wheelbase != nil {
		t.Errorf("Wheelbase should be unset, got %v", *cfg.Wheelbase)
	}
	if cfg.GetWheelbase() != 2.5 {
		t.Errorf("GetWheelbase() = %f, want 2.5", cfg.GetWheelbase())
	}
}

func TestLoadTuningConfig_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	write := func(name, body string) string {
		p := filepath.Join(tmpDir, name)
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
		return p
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"wrong extension", write("config.yaml", "period: 1"), ".json extension"},
		{"missing file", filepath.Join(tmpDir, "nope.json"), "failed to stat"},
		{"bad json", write("bad.json", "{"), "failed to parse"},
		{"zero period", write("zero.json", `{"period": 0}`), "period must be positive"},
		{"negative followers", write("neg.json", `{"followers": -1}`), "followers must be non-negative"},
		{"empty history", write("hist.json", `{"history_capacity": 0}`), "history_capacity"},
		{"positive brake", write("brake.json", `{"hard_brake_decel": 2}`), "hard_brake_decel"},
		{"steering too wide", write("steer.json", `{"steering_limit_deg": 95}`), "steering_limit_deg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTuningConfig(tt.path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadDefaultConfig(t *testing.T) {
	cfg, path, err := LoadDefaultConfig()
	if err != nil {
		t.Fatalf("LoadDefaultConfig: %v", err)
	}
	if path == "" {
		t.Fatalf("expected %s to be found from the package directory", DefaultConfigPath)
	}
	defaults := DefaultTuningConfig()

	if cfg.GetPeriod() != defaults.GetPeriod() {
		t.Errorf("defaults file period = %f, built-in = %f", cfg.GetPeriod(), defaults.GetPeriod())
	}
	if cfg.GetHistoryCapacity() != defaults.GetHistoryCapacity() {
		t.Errorf("defaults file history_capacity = %d, built-in = %d", cfg.GetHistoryCapacity(), defaults.GetHistoryCapacity())
	}
	if cfg.GetGainVelocity() != defaults.GetGainVelocity() {
		t.Errorf("defaults file gain_velocity = %f, built-in = %f", cfg.GetGainVelocity(), defaults.GetGainVelocity())
	}
}

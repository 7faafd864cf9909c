package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the root configuration for a platoon run.
// Every field is optional: the Get* accessors fall back to the built-in
// defaults, so a partial JSON file only overrides what it names.
type TuningConfig struct {
	// Driver params
	Period      *float64 `json:"period,omitempty"`       // fixed update interval (seconds)
	Followers   *int     `json:"followers,omitempty"`    // number of simulated followers
	PathSpacing *float64 `json:"path_spacing,omitempty"` // downsampled path spacing (metres)

	// Replay estimator params
	MeasurementNoise  *float64 `json:"measurement_noise,omitempty"`  // position measurement variance (m²)
	ProcessNoise      *float64 `json:"process_noise,omitempty"`      // per-second process variance
	InitialCovariance *float64 `json:"initial_covariance,omitempty"` // initial error covariance diagonal
	HeadingMinSpeed   *float64 `json:"heading_min_speed,omitempty"`  // heading is held below this speed (m/s)

	// Follow controller params
	SamplingInterval *float64 `json:"sampling_interval,omitempty"`  // leader history spacing (metres)
	HistoryCapacity  *int     `json:"history_capacity,omitempty"`   // leader history length
	LookAhead        *float64 `json:"look_ahead,omitempty"`         // pursuit look-ahead (metres)
	Wheelbase        *float64 `json:"wheelbase,omitempty"`          // bicycle model wheelbase (metres)
	InterVehicleTime *float64 `json:"inter_vehicle_time,omitempty"` // target time gap (seconds)
	StopDistance     *float64 `json:"stop_distance,omitempty"`      // standstill gap (metres)
	GainDistance     *float64 `json:"gain_distance,omitempty"`      // gap error gain
	GainVelocity     *float64 `json:"gain_velocity,omitempty"`      // relative speed gain
	HardBrakeDecel   *float64 `json:"hard_brake_decel,omitempty"`   // override acceleration (m/s², negative)
	SteeringLimitDeg *float64 `json:"steering_limit_deg,omitempty"` // steering clamp (degrees)

	// Telemetry params
	TelemetryBatchSize *int `json:"telemetry_batch_size,omitempty"` // states buffered per sqlite transaction
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field populated
// from the built-in defaults.
func DefaultTuningConfig() *TuningConfig {
	empty := EmptyTuningConfig()
	return &TuningConfig{
		Period:             ptrFloat64(empty.GetPeriod()),
		Followers:          ptrInt(empty.GetFollowers()),
		PathSpacing:        ptrFloat64(empty.GetPathSpacing()),
		MeasurementNoise:   ptrFloat64(empty.GetMeasurementNoise()),
		ProcessNoise:       ptrFloat64(empty.GetProcessNoise()),
		InitialCovariance:  ptrFloat64(empty.GetInitialCovariance()),
		HeadingMinSpeed:    ptrFloat64(empty.GetHeadingMinSpeed()),
		SamplingInterval:   ptrFloat64(empty.GetSamplingInterval()),
		HistoryCapacity:    ptrInt(empty.GetHistoryCapacity()),
		LookAhead:          ptrFloat64(empty.GetLookAhead()),
		Wheelbase:          ptrFloat64(empty.GetWheelbase()),
		InterVehicleTime:   ptrFloat64(empty.GetInterVehicleTime()),
		StopDistance:       ptrFloat64(empty.GetStopDistance()),
		GainDistance:       ptrFloat64(empty.GetGainDistance()),
		GainVelocity:       ptrFloat64(empty.GetGainVelocity()),
		HardBrakeDecel:     ptrFloat64(empty.GetHardBrakeDecel()),
		SteeringLimitDeg:   ptrFloat64(empty.GetSteeringLimitDeg()),
		TelemetryBatchSize: ptrInt(empty.GetTelemetryBatchSize()),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// FindDefaultConfig returns the path of the canonical tuning defaults file,
// searching the current directory and its parents up to three levels (so
// it is found from the repository root, cmd/ and package test directories).
// It returns "" when no copy exists.
func FindDefaultConfig() string {
	for _, path := range []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,
		"../../../" + DefaultConfigPath,
	} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadDefaultConfig loads the canonical tuning defaults file. When the file
// is not installed next to the binary the built-in defaults are returned and
// the returned path is empty. A file that exists but does not load is an
// error.
func LoadDefaultConfig() (*TuningConfig, string, error) {
	path := FindDefaultConfig()
	if path == "" {
		return DefaultTuningConfig(), "", nil
	}
	cfg, err := LoadTuningConfig(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Validate checks that the configuration values are valid.
// Only fields that are set are checked; defaults are always valid.
func (c *TuningConfig) Validate() error {
	if c.Period != nil && !(*c.Period > 0) {
		return fmt.Errorf("period must be positive, got %f", *c.Period)
	}
	if c.Followers != nil && *c.Followers < 0 {
		return fmt.Errorf("followers must be non-negative, got %d", *c.Followers)
	}
	if c.PathSpacing != nil && *c.PathSpacing < 0 {
		return fmt.Errorf("path_spacing must be non-negative, got %f", *c.PathSpacing)
	}
	if c.MeasurementNoise != nil && !(*c.MeasurementNoise > 0) {
		return fmt.Errorf("measurement_noise must be positive, got %f", *c.MeasurementNoise)
	}
	if c.ProcessNoise != nil && *c.ProcessNoise < 0 {
		return fmt.Errorf("process_noise must be non-negative, got %f", *c.ProcessNoise)
	}
	if c.InitialCovariance != nil && *c.InitialCovariance < 0 {
		return fmt.Errorf("initial_covariance must be non-negative, got %f", *c.InitialCovariance)
	}
	if c.SamplingInterval != nil && !(*c.SamplingInterval > 0) {
		return fmt.Errorf("sampling_interval must be positive, got %f", *c.SamplingInterval)
	}
	if c.HistoryCapacity != nil && *c.HistoryCapacity < 1 {
		return fmt.Errorf("history_capacity must be at least 1, got %d", *c.HistoryCapacity)
	}
	if c.LookAhead != nil && *c.LookAhead < 0 {
		return fmt.Errorf("look_ahead must be non-negative, got %f", *c.LookAhead)
	}
	if c.Wheelbase != nil && !(*c.Wheelbase > 0) {
		return fmt.Errorf("wheelbase must be positive, got %f", *c.Wheelbase)
	}
	if c.HardBrakeDecel != nil && *c.HardBrakeDecel > 0 {
		return fmt.Errorf("hard_brake_decel must not be positive, got %f", *c.HardBrakeDecel)
	}
	if c.SteeringLimitDeg != nil && (*c.SteeringLimitDeg <= 0 || *c.SteeringLimitDeg >= 90) {
		return fmt.Errorf("steering_limit_deg must be in (0, 90), got %f", *c.SteeringLimitDeg)
	}
	if c.TelemetryBatchSize != nil && *c.TelemetryBatchSize < 1 {
		return fmt.Errorf("telemetry_batch_size must be at least 1, got %d", *c.TelemetryBatchSize)
	}
	return nil
}

// GetPeriod returns the period value or the default (50 Hz).
func (c *TuningConfig) GetPeriod() float64 {
	if c.Period == nil {
		return 0.02
	}
	return *c.Period
}

// GetFollowers returns the followers value or the default.
func (c *TuningConfig) GetFollowers() int {
	if c.Followers == nil {
		return 2
	}
	return *c.Followers
}

// GetPathSpacing returns the path_spacing value or the default.
func (c *TuningConfig) GetPathSpacing() float64 {
	if c.PathSpacing == nil {
		return 2.0
	}
	return *c.PathSpacing
}

// GetMeasurementNoise returns the measurement_noise value or the default.
func (c *TuningConfig) GetMeasurementNoise() float64 {
	if c.MeasurementNoise == nil {
		return 0.5
	}
	return *c.MeasurementNoise
}

// GetProcessNoise returns the process_noise value or the default.
func (c *TuningConfig) GetProcessNoise() float64 {
	if c.ProcessNoise == nil {
		return 0.1
	}
	return *c.ProcessNoise
}

// GetInitialCovariance returns the initial_covariance value or the default.
func (c *TuningConfig) GetInitialCovariance() float64 {
	if c.InitialCovariance == nil {
		return 0.1
	}
	return *c.InitialCovariance
}

// GetHeadingMinSpeed returns the heading_min_speed value or the default.
func (c *TuningConfig) GetHeadingMinSpeed() float64 {
	if c.HeadingMinSpeed == nil {
		return 0.5
	}
	return *c.HeadingMinSpeed
}

// GetSamplingInterval returns the sampling_interval value or the default.
func (c *TuningConfig) GetSamplingInterval() float64 {
	if c.SamplingInterval == nil {
		return 0.5
	}
	return *c.SamplingInterval
}

// GetHistoryCapacity returns the history_capacity value or the default.
func (c *TuningConfig) GetHistoryCapacity() int {
	if c.HistoryCapacity == nil {
		return 100
	}
	return *c.HistoryCapacity
}

// GetLookAhead returns the look_ahead value or the default.
func (c *TuningConfig) GetLookAhead() float64 {
	if c.LookAhead == nil {
		return 5.0
	}
	return *c.LookAhead
}

// GetWheelbase returns the wheelbase value or the default.
func (c *TuningConfig) GetWheelbase() float64 {
	if c.Wheelbase == nil {
		return 2.5
	}
	return *c.Wheelbase
}

// GetInterVehicleTime returns the inter_vehicle_time value or the default.
func (c *TuningConfig) GetInterVehicleTime() float64 {
	if c.InterVehicleTime == nil {
		return 3.0
	}
	return *c.InterVehicleTime
}

// GetStopDistance returns the stop_distance value or the default.
func (c *TuningConfig) GetStopDistance() float64 {
	if c.StopDistance == nil {
		return 5.0
	}
	return *c.StopDistance
}

// GetGainDistance returns the gain_distance value or the default.
func (c *TuningConfig) GetGainDistance() float64 {
	if c.GainDistance == nil {
		return 0.05
	}
	return *c.GainDistance
}

// GetGainVelocity returns the gain_velocity value or the default.
func (c *TuningConfig) GetGainVelocity() float64 {
	if c.GainVelocity == nil {
		return 0.4
	}
	return *c.GainVelocity
}

// GetHardBrakeDecel returns the hard_brake_decel value or the default.
func (c *TuningConfig) GetHardBrakeDecel() float64 {
	if c.HardBrakeDecel == nil {
		return -5.0
	}
	return *c.HardBrakeDecel
}

// GetSteeringLimitDeg returns the steering_limit_deg value or the default.
func (c *TuningConfig) GetSteeringLimitDeg() float64 {
	if c.SteeringLimitDeg == nil {
		return 30.0
	}
	return *c.SteeringLimitDeg
}

// GetTelemetryBatchSize returns the telemetry_batch_size value or the default.
func (c *TuningConfig) GetTelemetryBatchSize() int {
	if c.TelemetryBatchSize == nil {
		return 500
	}
	return *c.TelemetryBatchSize
}

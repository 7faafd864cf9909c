package sim

import (
	"github.com/banshee-data/platoon/internal/config"
	"github.com/banshee-data/platoon/internal/vehicle"
)

// Config describes a platoon run.
type Config struct {
	Period       float64 // fixed step, seconds
	Followers    int     // vehicles behind the lead
	PathSpacing  float64 // spacing of the reference path, m
	Follow       vehicle.FollowConfig
	StopWhenDone bool // stop once the lead has replayed its whole log
}

// DefaultConfig returns a two-follower platoon stepped at 50 Hz.
func DefaultConfig() Config {
	return Config{
		Period:       0.02,
		Followers:    2,
		PathSpacing:  2.0,
		Follow:       vehicle.DefaultFollowConfig(),
		StopWhenDone: true,
	}
}

// ConfigFromTuning reads the platoon settings of a tuning config.
func ConfigFromTuning(t *config.TuningConfig) Config {
	return Config{
		Period:       t.GetPeriod(),
		Followers:    t.GetFollowers(),
		PathSpacing:  t.GetPathSpacing(),
		Follow:       vehicle.FollowConfigFromTuning(t),
		StopWhenDone: true,
	}
}

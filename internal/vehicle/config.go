package vehicle

import (
	"math"

	"github.com/banshee-data/platoon/internal/config"
)

// EstimatorConfig holds the replay filter's noise model.
type EstimatorConfig struct {
	MeasurementNoise  float64 // position variance per axis, m²
	ProcessNoise      float64 // variance per axis per second
	InitialCovariance float64 // diagonal of P at first fix
	HeadingMinSpeed   float64 // heading is held below this speed, m/s
}

// DefaultEstimatorConfig returns the standard replay noise model.
func DefaultEstimatorConfig() EstimatorConfig {
	return EstimatorConfig{
		MeasurementNoise:  0.5,
		ProcessNoise:      0.1,
		InitialCovariance: 0.1,
		HeadingMinSpeed:   0.5,
	}
}

// EstimatorConfigFromTuning reads the estimator fields of a tuning config.
func EstimatorConfigFromTuning(t *config.TuningConfig) EstimatorConfig {
	return EstimatorConfig{
		MeasurementNoise:  t.GetMeasurementNoise(),
		ProcessNoise:      t.GetProcessNoise(),
		InitialCovariance: t.GetInitialCovariance(),
		HeadingMinSpeed:   t.GetHeadingMinSpeed(),
	}
}

// FollowConfig is the fixed follow policy shared by every follower in a
// platoon.
type FollowConfig struct {
	SamplingInterval float64 // minimum leader travel between history samples, m
	HistoryCapacity  int
	LookAhead        float64 // pursuit distance along the history, m
	Wheelbase        float64 // m
	InterVehicleTime float64 // desired time gap, s
	StopDistance     float64 // m
	GainDistance     float64
	GainVelocity     float64
	HardBrakeDecel   float64 // m/s², negative
	SteeringLimit    float64 // radians, symmetric
}

// DefaultFollowConfig returns the standard follow policy.
func DefaultFollowConfig() FollowConfig {
	return FollowConfig{
		SamplingInterval: 0.5,
		HistoryCapacity:  100,
		LookAhead:        5.0,
		Wheelbase:        2.5,
		InterVehicleTime: 3.0,
		StopDistance:     5.0,
		GainDistance:     0.05,
		GainVelocity:     0.4,
		HardBrakeDecel:   -5.0,
		SteeringLimit:    degToRad(30),
	}
}

// FollowConfigFromTuning reads the follow policy from a tuning config.
func FollowConfigFromTuning(t *config.TuningConfig) FollowConfig {
	return FollowConfig{
		SamplingInterval: t.GetSamplingInterval(),
		HistoryCapacity:  t.GetHistoryCapacity(),
		LookAhead:        t.GetLookAhead(),
		Wheelbase:        t.GetWheelbase(),
		InterVehicleTime: t.GetInterVehicleTime(),
		StopDistance:     t.GetStopDistance(),
		GainDistance:     t.GetGainDistance(),
		GainVelocity:     t.GetGainVelocity(),
		HardBrakeDecel:   t.GetHardBrakeDecel(),
		SteeringLimit:    degToRad(t.GetSteeringLimitDeg()),
	}
}

// degToRad is evaluated in float64 on every path so that the built-in and
// tuned steering limits agree bit for bit.
func degToRad(d float64) float64 { return d * math.Pi / 180 }

// lookAheadSteps is the number of history samples spanned by LookAhead.
func (c FollowConfig) lookAheadSteps() int {
	return int(math.Floor(c.LookAhead / c.SamplingInterval))
}

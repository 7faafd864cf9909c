package vehicle

import (
	"iter"
	"math"

	"github.com/banshee-data/platoon/internal/fsutil"
	"github.com/banshee-data/platoon/internal/trajectory"
)

// ReplayEstimator replays a recorded trajectory in simulation time and
// smooths it through a constant-velocity Kalman filter.
//
// Each Update advances simulation time by one period and consumes every
// sample that has become due. The first due sample initialises the filter at
// that position with zero velocity; later due samples are applied as
// position measurements. Once initialised the filter predicts one period on
// every Update and the prediction becomes the vehicle's state. Once the last
// sample has been consumed Update does nothing.
type ReplayEstimator struct {
	Body

	cfg       EstimatorConfig
	log       trajectory.Log
	dataIndex int
	filter    *cvFilter // nil until the first sample is due
}

// NewReplayEstimator returns an estimator with an empty log.
func NewReplayEstimator(cfg EstimatorConfig) *ReplayEstimator {
	return &ReplayEstimator{cfg: cfg}
}

// LoadLog replaces the trajectory. Samples are offset so that the first one
// sits at the origin in space and time. The filter and replay position are
// reset; simulation time is not.
func (e *ReplayEstimator) LoadLog(samples []trajectory.Sample) {
	e.log = trajectory.NewLog(trajectory.Normalize(samples))
	e.dataIndex = 0
	e.filter = nil
}

// LoadFile loads a log file from the local filesystem.
func (e *ReplayEstimator) LoadFile(path string) error {
	return e.LoadFrom(fsutil.OSFileSystem{}, path)
}

// LoadFrom loads a log file through fsys. On error the log is left empty and
// the error is a *trajectory.FormatError or *trajectory.ParseError.
func (e *ReplayEstimator) LoadFrom(fsys fsutil.FileSystem, path string) error {
	log, err := trajectory.ReadFile(fsys, path)
	if err != nil {
		e.LoadLog(nil)
		return err
	}
	e.LoadLog(log.Samples())
	return nil
}

// Update advances the replay by one period.
func (e *ReplayEstimator) Update() {
	n := e.log.Len()
	if n == 0 || e.dataIndex >= n-1 {
		return
	}

	e.tick()

	prev := e.dataIndex
	for e.dataIndex < n-1 && e.log.At(e.dataIndex+1).Timestamp <= e.simTime {
		e.dataIndex++
	}

	if e.dataIndex != prev {
		s := e.log.At(e.dataIndex)
		if e.filter == nil {
			e.filter = newCVFilter(s.X, s.Y, e.period, e.cfg)
		} else {
			e.filter.correct(s.X, s.Y)
		}
	}

	if e.filter == nil {
		return
	}

	e.filter.predict()
	e.x, e.y = e.filter.position()
	vx, vy := e.filter.velocity()
	e.velocity = math.Hypot(vx, vy)
	if e.velocity > e.cfg.HeadingMinSpeed {
		e.heading = math.Atan2(vy, vx)
	}
}

// DownsamplePath returns the loaded trajectory thinned to at least
// minSpacing between consecutive points.
func (e *ReplayEstimator) DownsamplePath(minSpacing float64) iter.Seq[trajectory.Sample] {
	return e.log.Downsample(minSpacing)
}

// Done reports whether the replay has consumed its last sample or has
// nothing to replay.
func (e *ReplayEstimator) Done() bool {
	return e.log.Len() == 0 || e.dataIndex >= e.log.Len()-1
}

// DataIndex returns the index of the most recently consumed sample.
func (e *ReplayEstimator) DataIndex() int { return e.dataIndex }

// Tracking reports whether the filter has been initialised.
func (e *ReplayEstimator) Tracking() bool { return e.filter != nil }

// Log returns the normalised trajectory.
func (e *ReplayEstimator) Log() trajectory.Log { return e.log }

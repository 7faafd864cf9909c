package vehicle

import (
	"math"

	"github.com/banshee-data/platoon/internal/trajectory"
)

// Command is the control output of a follower's most recent Update.
type Command struct {
	Steering     float64 // radians, clamped to the steering limit
	YawRate      float64 // rad/s
	Accel        float64 // m/s²
	Gap          float64 // path-discretised distance to the leader, m
	ClosestIndex int     // history index nearest to the follower
	FollowIndex  int     // pursuit target index
	LeaderIndex  int     // history index nearest to the leader
}

// Follower drives a bicycle model along the sampled path of the vehicle
// ahead. It steers toward a look-ahead point on that path and sets its
// acceleration from the gap to the leader and their speed difference.
//
// The leader is borrowed: it must outlive every Update, and it must be
// updated before the follower in each step.
type Follower struct {
	Body

	cfg    FollowConfig
	leader Reader
	hist   *history
	cmd    Command
}

// NewFollower returns a follower with no leader.
func NewFollower(cfg FollowConfig) *Follower {
	return &Follower{
		cfg:  cfg,
		hist: newHistory(cfg.HistoryCapacity),
	}
}

// SetLeader sets the vehicle to follow and clears the history sampled from
// the previous leader. A nil leader is ignored.
func (f *Follower) SetLeader(leader Reader) {
	if leader == nil {
		return
	}
	f.hist.reset()
	f.leader = leader
}

// Leader returns the current leader, or nil.
func (f *Follower) Leader() Reader { return f.leader }

// Update advances the follower by one period.
func (f *Follower) Update() {
	f.tick()

	if f.leader != nil && (f.hist.size() == 0 ||
		f.leader.DistanceToSample(f.hist.last()) > f.cfg.SamplingInterval) {
		f.hist.push(trajectory.Sample{
			Timestamp: f.simTime,
			X:         f.leader.X(),
			Y:         f.leader.Y(),
		})
	}

	if f.hist.size() == 0 {
		return
	}

	// Lateral: pursue a point LookAhead metres further along the history.
	closest := f.hist.nearest(f.x, f.y)
	follow := min(closest+f.cfg.lookAheadSteps(), f.hist.size()-1)
	target := f.hist.at(follow)

	dx := target.X - f.x
	dy := target.Y - f.y
	sin, cos := math.Sincos(f.heading)
	localX := dx*cos + dy*sin
	localY := -dx*sin + dy*cos
	steering := math.Max(-f.cfg.SteeringLimit, math.Min(math.Atan2(localY, localX), f.cfg.SteeringLimit))
	yawRate := f.velocity * math.Tan(steering) / f.cfg.Wheelbase

	// Longitudinal: the leader is located in the same history, so the gap
	// lags by up to one sampling interval.
	leaderIdx := f.hist.nearest(f.leader.X(), f.leader.Y())
	gap := math.Max(float64(leaderIdx-closest)*f.cfg.SamplingInterval, 0)
	targetRange := f.velocity*f.cfg.InterVehicleTime + f.cfg.StopDistance
	accel := f.cfg.GainDistance*(gap-targetRange) + f.cfg.GainVelocity*(f.leader.Velocity()-f.velocity)
	if gap < f.cfg.StopDistance {
		accel = f.cfg.HardBrakeDecel
	}

	f.velocity = math.Max(f.velocity+accel*f.period, 0)
	f.x += f.velocity * math.Cos(f.heading) * f.period
	f.y += f.velocity * math.Sin(f.heading) * f.period
	f.heading += yawRate * f.period

	f.cmd = Command{
		Steering:     steering,
		YawRate:      yawRate,
		Accel:        accel,
		Gap:          gap,
		ClosestIndex: closest,
		FollowIndex:  follow,
		LeaderIndex:  leaderIdx,
	}
}

// LastCommand returns the command computed by the most recent Update that
// had a history to follow.
func (f *Follower) LastCommand() Command { return f.cmd }

// HistoryLen returns the number of stored leader samples.
func (f *Follower) HistoryLen() int { return f.hist.size() }

// History returns the stored leader samples, oldest first.
func (f *Follower) History() []trajectory.Sample { return f.hist.samples() }

package vehicle

import (
	"math"

	"github.com/banshee-data/platoon/internal/trajectory"
)

// Reader is the read-only view of a vehicle used by followers, renderers and
// telemetry.
type Reader interface {
	X() float64
	Y() float64
	Velocity() float64
	Heading() float64
	DistanceTo(other Reader) float64
	DistanceToSample(s trajectory.Sample) float64
}

// Agent is a vehicle advanced once per fixed period.
type Agent interface {
	Reader
	// Update advances simulation time by one period and recomputes the
	// kinematic state.
	Update()
	// State returns a snapshot of the current kinematic state.
	State() State
}

// State is a snapshot of a vehicle's kinematic state.
type State struct {
	SimTime  float64 // seconds since Init
	X        float64 // metres, world frame (east)
	Y        float64 // metres, world frame (north)
	Velocity float64 // m/s, never negative
	Heading  float64 // radians, east is 0
}

// Body holds the kinematic state shared by every vehicle. Concrete agents
// embed it and mutate it only from their own Update. A bare Body is a valid
// Reader, which is handy as a fixed leader.
type Body struct {
	period   float64
	simTime  float64
	x        float64
	y        float64
	velocity float64
	heading  float64
}

// Init resets simulation time and sets the kinematic state.
func (b *Body) Init(x, y, velocity, heading float64) {
	b.simTime = 0
	b.x = x
	b.y = y
	b.velocity = velocity
	b.heading = heading
}

// SetPeriod sets the fixed update interval in seconds. The period must be
// positive and must not change once updates have started; neither is checked.
func (b *Body) SetPeriod(period float64) {
	b.period = period
}

func (b *Body) Period() float64   { return b.period }
func (b *Body) SimTime() float64  { return b.simTime }
func (b *Body) X() float64        { return b.x }
func (b *Body) Y() float64        { return b.y }
func (b *Body) Velocity() float64 { return b.velocity }
func (b *Body) Heading() float64  { return b.heading }

// DistanceTo returns the Euclidean distance to another vehicle.
func (b *Body) DistanceTo(other Reader) float64 {
	return distance(b.x, b.y, other.X(), other.Y())
}

// DistanceToSample returns the Euclidean distance to a recorded position.
func (b *Body) DistanceToSample(s trajectory.Sample) float64 {
	return distance(b.x, b.y, s.X, s.Y)
}

// State returns a snapshot of the current kinematic state.
func (b *Body) State() State {
	return State{
		SimTime:  b.simTime,
		X:        b.x,
		Y:        b.y,
		Velocity: b.velocity,
		Heading:  b.heading,
	}
}

func (b *Body) tick() {
	b.simTime += b.period
}

func distance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}

var (
	_ Agent  = (*ReplayEstimator)(nil)
	_ Agent  = (*Follower)(nil)
	_ Reader = (*Body)(nil)
)

package sim

import (
	"fmt"

	"github.com/banshee-data/platoon/internal/vehicle"
)

// Observer receives the state of every vehicle after each step. States are
// ordered lead first. The slice is reused between steps and must not be
// retained.
type Observer interface {
	Observe(step int, states []vehicle.State) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(step int, states []vehicle.State) error

// Observe calls f.
func (f ObserverFunc) Observe(step int, states []vehicle.State) error {
	return f(step, states)
}

// VehicleName returns the display name of the vehicle at index i of a
// platoon's states.
func VehicleName(i int) string {
	if i == 0 {
		return "lead"
	}
	return fmt.Sprintf("follower-%d", i)
}

// Trace keeps every vehicle's trail in memory, sampling one step in Every.
type Trace struct {
	every  int
	trails [][]vehicle.State
}

// NewTrace returns a Trace that records one step in every. Values below 1
// record every step.
func NewTrace(every int) *Trace {
	return &Trace{every: max(every, 1)}
}

// Observe implements Observer.
func (t *Trace) Observe(step int, states []vehicle.State) error {
	if step%t.every != 0 {
		return nil
	}
	for len(t.trails) < len(states) {
		t.trails = append(t.trails, nil)
	}
	for i, s := range states {
		t.trails[i] = append(t.trails[i], s)
	}
	return nil
}

// Trails returns the recorded states per vehicle, lead first.
func (t *Trace) Trails() [][]vehicle.State {
	return t.trails
}

// Len returns the number of recorded vehicles.
func (t *Trace) Len() int {
	return len(t.trails)
}

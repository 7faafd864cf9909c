package telemetry

import (
	"github.com/google/uuid"

	"github.com/banshee-data/platoon/internal/vehicle"
)

// Recorder buffers vehicle states for one run and writes them to the store
// every batchSize steps. Call Flush once the run ends.
type Recorder struct {
	store     *Store
	runID     uuid.UUID
	batchSize int
	pending   []Row
	buffered  int
	written   int
}

// Recorder returns an observer that records states for runID. A batchSize
// below 1 flushes every step.
func (s *Store) Recorder(runID uuid.UUID, batchSize int) *Recorder {
	return &Recorder{
		store:     s,
		runID:     runID,
		batchSize: max(batchSize, 1),
	}
}

// Observe buffers one step and flushes a full batch. It satisfies
// sim.Observer.
func (r *Recorder) Observe(step int, states []vehicle.State) error {
	for i, s := range states {
		r.pending = append(r.pending, Row{Step: step, Vehicle: i, State: s})
	}
	r.buffered++
	if r.buffered >= r.batchSize {
		return r.Flush()
	}
	return nil
}

// Flush writes every buffered state.
func (r *Recorder) Flush() error {
	if len(r.pending) == 0 {
		return nil
	}
	if err := r.store.insertRows(r.runID, r.pending); err != nil {
		return err
	}
	r.written += len(r.pending)
	r.pending = r.pending[:0]
	r.buffered = 0
	return nil
}

// Written returns the number of state rows committed so far.
func (r *Recorder) Written() int {
	return r.written
}

package sim

import (
	"context"
	"fmt"
	"slices"

	"github.com/banshee-data/platoon/internal/monitoring"
	"github.com/banshee-data/platoon/internal/timeutil"
	"github.com/banshee-data/platoon/internal/trajectory"
	"github.com/banshee-data/platoon/internal/vehicle"
)

// Platoon owns a lead replay and its followers. Follower 0 follows the
// lead and follower i follows follower i-1.
type Platoon struct {
	cfg       Config
	lead      *vehicle.ReplayEstimator
	followers []*vehicle.Follower
	agents    []vehicle.Agent
	path      []trajectory.Sample
	observers []Observer
	states    []vehicle.State
	steps     int
}

// NewPlatoon builds the chain behind lead, which must already hold its log.
// Followers start at rest, facing east, at the first point of the path.
func NewPlatoon(cfg Config, lead *vehicle.ReplayEstimator) *Platoon {
	lead.SetPeriod(cfg.Period)

	p := &Platoon{
		cfg:  cfg,
		lead: lead,
		path: slices.Collect(lead.DownsamplePath(cfg.PathSpacing)),
	}

	var start trajectory.Sample
	if len(p.path) > 0 {
		start = p.path[0]
	}

	p.agents = append(p.agents, lead)
	var ahead vehicle.Reader = lead
	for i := 0; i < cfg.Followers; i++ {
		f := vehicle.NewFollower(cfg.Follow)
		f.Init(start.X, start.Y, 0, 0)
		f.SetPeriod(cfg.Period)
		f.SetLeader(ahead)
		p.followers = append(p.followers, f)
		p.agents = append(p.agents, f)
		ahead = f
	}
	p.states = make([]vehicle.State, len(p.agents))
	return p
}

// AddObserver registers o to receive states after every step.
func (p *Platoon) AddObserver(o Observer) {
	p.observers = append(p.observers, o)
}

func (p *Platoon) Lead() *vehicle.ReplayEstimator { return p.lead }
func (p *Platoon) Followers() []*vehicle.Follower { return p.followers }

// Agents returns every vehicle in update order.
func (p *Platoon) Agents() []vehicle.Agent { return p.agents }

// Path returns the reference path the followers were placed on.
func (p *Platoon) Path() []trajectory.Sample { return p.path }

// StepCount returns the number of completed steps.
func (p *Platoon) StepCount() int { return p.steps }

// States returns a snapshot of every vehicle, lead first.
func (p *Platoon) States() []vehicle.State {
	out := make([]vehicle.State, len(p.agents))
	for i, a := range p.agents {
		out[i] = a.State()
	}
	return out
}

// Step updates every agent once, leader before follower, then notifies the
// observers. An observer error stops the notification and is returned.
func (p *Platoon) Step() error {
	for _, a := range p.agents {
		a.Update()
	}
	p.steps++

	for i, a := range p.agents {
		p.states[i] = a.State()
	}
	for _, o := range p.observers {
		if err := o.Observe(p.steps, p.states); err != nil {
			return fmt.Errorf("observer at step %d: %w", p.steps, err)
		}
	}
	return nil
}

// finished reports whether a run limited to n steps (0 for no limit) should
// stop.
func (p *Platoon) finished(start, n int) bool {
	if n > 0 && p.steps-start >= n {
		return true
	}
	return p.cfg.StopWhenDone && p.lead.Done()
}

// RunSteps steps as fast as possible until n steps have run (0 for no
// limit), the lead is done and StopWhenDone is set, or ctx is cancelled.
func (p *Platoon) RunSteps(ctx context.Context, n int) error {
	start := p.steps
	for !p.finished(start, n) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Step(); err != nil {
			return err
		}
	}
	p.logFinish(start)
	return nil
}

// Run is RunSteps paced to one step per period of clock.
func (p *Platoon) Run(ctx context.Context, clock timeutil.Clock, n int) error {
	ticker := clock.NewTicker(timeutil.PeriodDuration(p.cfg.Period))
	defer ticker.Stop()

	start := p.steps
	for !p.finished(start, n) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
		}
		if err := p.Step(); err != nil {
			return err
		}
	}
	p.logFinish(start)
	return nil
}

func (p *Platoon) logFinish(start int) {
	monitoring.Verbosef("platoon: %d steps, %.2fs simulated, lead sample %d/%d",
		p.steps-start, p.lead.SimTime(), p.lead.DataIndex(), p.lead.Log().Len())
}

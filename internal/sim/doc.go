// Package sim drives a platoon: one replayed lead vehicle followed by a
// chain of simulated followers, stepped on a fixed period.
//
// Responsibilities: building the chain from a loaded replay, stepping agents
// in leader-to-follower order, pacing against a timeutil.Clock, and fanning
// per-step states out to observers (telemetry, traces).
// Key types: Platoon, Config, Observer, Trace.
//
// A Platoon is not safe for concurrent use; it is stepped from one goroutine.
package sim

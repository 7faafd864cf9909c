// Package vehicle owns the per-vehicle state and the two step algorithms
// that drive a platoon.
//
// Responsibilities: the shared fixed-timestep vehicle state (Body), replay of
// a recorded trajectory through a constant-velocity Kalman filter
// (ReplayEstimator), and pursuit steering with gap control over a bicycle
// model (Follower).
// Key types: Agent, Reader, Body, ReplayEstimator, Follower.
//
// Update never fails and never blocks. A Follower only reads its leader
// through Reader, so within one simulation step the leader must be updated
// before its follower.
package vehicle

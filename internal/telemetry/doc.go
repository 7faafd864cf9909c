// Package telemetry persists platoon runs to sqlite.
//
// A Store holds one row per run and one row per vehicle per recorded step.
// The schema is managed by embedded golang-migrate migrations applied on
// Open. A Recorder adapts a run to sim.Observer and writes states in
// batched transactions.
package telemetry

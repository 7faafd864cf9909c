// Package monitoring holds the process-wide diagnostic logger used by the
// loaders, the platoon driver and the telemetry store.
package monitoring

import (
	"log"
	"sync/atomic"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or the CLI can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

var verbose atomic.Bool

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetVerbose enables or disables Verbosef output.
func SetVerbose(on bool) {
	verbose.Store(on)
}

// Verbose reports whether verbose diagnostics are enabled.
func Verbose() bool {
	return verbose.Load()
}

// Verbosef logs through Logf only when verbose diagnostics are enabled.
// Per-step simulation code must not call it; it is meant for load and run
// boundaries.
func Verbosef(format string, v ...interface{}) {
	if !verbose.Load() {
		return
	}
	Logf(format, v...)
}

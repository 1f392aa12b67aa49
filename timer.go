package sweep

import (
	"time"
)

// Timer measures the compute phase of a top-level operation. Each call owns
// its own Timer rather than sharing process-wide state; callers pass one to
// Scan, Compact, or RadixSort and read the elapsed device time afterwards.
// Host-device transfers are not included in the measurement.
//
// A nil *Timer is valid and records nothing, so callers that do not care
// about timing pass nil.
type Timer struct {
	start   time.Time
	elapsed time.Duration
	running bool
}

// StartMeasurement begins a measurement interval.
func (t *Timer) StartMeasurement() {
	if t == nil {
		return
	}
	t.start = time.Now()
	t.running = true
}

// StopMeasurement ends the current interval and accumulates it. A radix
// sort call brackets all of its passes in one interval, so Elapsed reports
// the full compute time of the call.
func (t *Timer) StopMeasurement() {
	if t == nil || !t.running {
		return
	}
	t.elapsed += time.Since(t.start)
	t.running = false
}

// Elapsed returns the total accumulated compute time.
func (t *Timer) Elapsed() time.Duration {
	if t == nil {
		return 0
	}
	return t.elapsed
}

// Reset clears accumulated time so the Timer can be reused across calls.
func (t *Timer) Reset() {
	if t == nil {
		return
	}
	t.elapsed = 0
	t.running = false
}

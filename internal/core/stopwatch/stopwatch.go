// Package stopwatch implements a count-up session timer driven by an
// external tick loop.
package stopwatch

import (
	"sync"
	"time"

	"fitclock/internal/core/clock"
)

// Snapshot is a point-in-time copy of the stopwatch state.
type Snapshot struct {
	Running bool
	Elapsed time.Duration
}

// Stopwatch accumulates elapsed time between Start and Stop. Accumulation
// uses per-tick deltas rather than a start baseline, so a stale sample after
// a long suspend folds in as one bounded interval instead of a jump.
type Stopwatch struct {
	mu         sync.Mutex
	clock      clock.Clock
	running    bool
	elapsed    time.Duration
	lastSample time.Time
}

// New returns a stopped stopwatch reading time from source. A nil source
// falls back to the system clock.
func New(source clock.Clock) *Stopwatch {
	if source == nil {
		source = clock.System
	}
	return &Stopwatch{clock: source}
}

// Start begins or resumes accumulation. Starting a running stopwatch is a
// no-op.
func (watch *Stopwatch) Start() {
	watch.mu.Lock()
	defer watch.mu.Unlock()

	if watch.running {
		return
	}
	watch.running = true
	watch.lastSample = watch.clock.Now()
}

// Stop folds the interval since the last sample into the total and freezes
// it. Stopping a stopped stopwatch is a no-op.
func (watch *Stopwatch) Stop() {
	watch.mu.Lock()
	defer watch.mu.Unlock()

	if !watch.running {
		return
	}
	watch.foldLocked()
	watch.running = false
}

// Reset stops the stopwatch and zeroes the accumulated time.
func (watch *Stopwatch) Reset() {
	watch.mu.Lock()
	defer watch.mu.Unlock()

	watch.running = false
	watch.elapsed = 0
}

// Tick folds the interval since the previous sample into the total. The
// owning loop calls this once per frame; between ticks Elapsed holds still.
func (watch *Stopwatch) Tick() {
	watch.mu.Lock()
	defer watch.mu.Unlock()

	if !watch.running {
		return
	}
	watch.foldLocked()
}

func (watch *Stopwatch) foldLocked() {
	now := watch.clock.Now()
	if delta := now.Sub(watch.lastSample); delta > 0 {
		watch.elapsed += delta
	}
	watch.lastSample = now
}

// Elapsed returns the accumulated running time as of the last fold.
func (watch *Stopwatch) Elapsed() time.Duration {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.elapsed
}

// Running reports whether the stopwatch is accumulating.
func (watch *Stopwatch) Running() bool {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.running
}

// Snapshot returns a consistent copy of the current state.
func (watch *Stopwatch) Snapshot() Snapshot {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return Snapshot{Running: watch.running, Elapsed: watch.elapsed}
}

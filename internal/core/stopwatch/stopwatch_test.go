package stopwatch

import (
	"testing"
	"time"

	"fitclock/internal/core/clock"
)

func TestElapsedAccumulatesAcrossTicks(t *testing.T) {
	manual := clock.NewManual(time.Unix(0, 0))
	watch := New(manual)

	watch.Start()
	manual.Advance(2 * time.Second)
	watch.Tick()

	if got := watch.Elapsed(); got != 2*time.Second {
		t.Fatalf("Elapsed() = %v, want %v", got, 2*time.Second)
	}

	manual.Advance(500 * time.Millisecond)
	watch.Tick()

	if got := watch.Elapsed(); got != 2500*time.Millisecond {
		t.Fatalf("Elapsed() = %v, want %v", got, 2500*time.Millisecond)
	}
}

func TestSplitIntervalsSumExactly(t *testing.T) {
	manual := clock.NewManual(time.Unix(0, 0))
	watch := New(manual)

	watch.Start()
	manual.Advance(3 * time.Second)
	watch.Stop()

	manual.Advance(time.Hour) // stopped time must not count

	watch.Start()
	manual.Advance(2 * time.Second)
	watch.Stop()

	if got := watch.Elapsed(); got != 5*time.Second {
		t.Fatalf("Elapsed() = %v, want %v", got, 5*time.Second)
	}
}

func TestStopFoldsFinalDelta(t *testing.T) {
	manual := clock.NewManual(time.Unix(0, 0))
	watch := New(manual)

	watch.Start()
	manual.Advance(time.Second)
	watch.Tick()
	manual.Advance(700 * time.Millisecond) // no tick between here and Stop
	watch.Stop()

	if got := watch.Elapsed(); got != 1700*time.Millisecond {
		t.Fatalf("Elapsed() = %v, want %v", got, 1700*time.Millisecond)
	}
}

func TestElapsedHoldsBetweenTicks(t *testing.T) {
	manual := clock.NewManual(time.Unix(0, 0))
	watch := New(manual)

	watch.Start()
	manual.Advance(time.Second)
	watch.Tick()

	manual.Advance(30 * time.Second)
	if got := watch.Elapsed(); got != time.Second {
		t.Fatalf("Elapsed() = %v before the next tick, want %v", got, time.Second)
	}

	watch.Tick()
	if got := watch.Elapsed(); got != 31*time.Second {
		t.Fatalf("Elapsed() = %v after the tick, want %v", got, 31*time.Second)
	}
}

func TestStartWhileRunningKeepsPendingDelta(t *testing.T) {
	manual := clock.NewManual(time.Unix(0, 0))
	watch := New(manual)

	watch.Start()
	manual.Advance(time.Second)
	watch.Start() // must not refresh the sample and drop the second
	watch.Tick()

	if got := watch.Elapsed(); got != time.Second {
		t.Fatalf("Elapsed() = %v, want %v", got, time.Second)
	}
}

func TestResetZeroesAndStops(t *testing.T) {
	manual := clock.NewManual(time.Unix(0, 0))
	watch := New(manual)

	watch.Start()
	manual.Advance(4 * time.Second)
	watch.Tick()
	watch.Reset()

	if got := watch.Elapsed(); got != 0 {
		t.Fatalf("Elapsed() = %v after Reset, want 0", got)
	}
	if watch.Running() {
		t.Fatal("Running() = true after Reset")
	}

	manual.Advance(time.Second)
	watch.Tick()
	if got := watch.Elapsed(); got != 0 {
		t.Fatalf("Elapsed() = %v after a stopped tick, want 0", got)
	}
}

func TestSnapshot(t *testing.T) {
	manual := clock.NewManual(time.Unix(0, 0))
	watch := New(manual)

	watch.Start()
	manual.Advance(90 * time.Second)
	watch.Tick()

	snap := watch.Snapshot()
	if !snap.Running {
		t.Error("Snapshot().Running = false for a started stopwatch")
	}
	if snap.Elapsed != 90*time.Second {
		t.Errorf("Snapshot().Elapsed = %v, want %v", snap.Elapsed, 90*time.Second)
	}
}

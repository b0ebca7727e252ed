package tickloop

import (
	"testing"
	"time"
)

func notify(ticks chan struct{}) FuncTicker {
	return func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	}
}

func waitTick(t *testing.T, ticks chan struct{}) {
	t.Helper()
	select {
	case <-ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("ticker starved")
	}
}

func TestTickersReceiveTicks(t *testing.T) {
	loop := New(5 * time.Millisecond)
	ticks := make(chan struct{}, 16)
	loop.Register(notify(ticks))

	loop.Start()
	defer loop.Stop()

	for i := 0; i < 3; i++ {
		waitTick(t, ticks)
	}
}

func TestRegisterWhileRunning(t *testing.T) {
	loop := New(5 * time.Millisecond)
	loop.Start()
	defer loop.Stop()

	ticks := make(chan struct{}, 16)
	loop.Register(notify(ticks))

	waitTick(t, ticks)
}

func TestStopHaltsTicking(t *testing.T) {
	loop := New(5 * time.Millisecond)
	ticks := make(chan struct{}, 16)
	loop.Register(notify(ticks))

	loop.Start()
	waitTick(t, ticks)
	loop.Stop()

	// Let an in-flight frame finish, then expect silence.
	time.Sleep(20 * time.Millisecond)
	for len(ticks) > 0 {
		<-ticks
	}
	select {
	case <-ticks:
		t.Fatal("tick arrived after Stop")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStartReplacesPreviousLoop(t *testing.T) {
	loop := New(5 * time.Millisecond)
	loop.Start()

	loop.mu.Lock()
	first := loop.stopCh
	loop.mu.Unlock()

	loop.Start()
	defer loop.Stop()

	select {
	case <-first:
	case <-time.After(time.Second):
		t.Fatal("previous loop goroutine was not released")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	loop := New(5 * time.Millisecond)
	loop.Start()
	loop.Stop()
	loop.Stop() // second stop must not panic on a closed channel
}

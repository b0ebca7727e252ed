// Package tickloop drives registered tickers from a single goroutine at a
// fixed frame interval.
package tickloop

import (
	"sync"
	"time"
)

// DefaultInterval is the frame interval used when none is configured,
// frequent enough that a human-facing countdown reads as continuous.
const DefaultInterval = 50 * time.Millisecond

// Ticker is anything advanced by the loop once per frame.
type Ticker interface {
	Tick()
}

// FuncTicker adapts a plain function to the Ticker interface.
type FuncTicker func()

// Tick calls the wrapped function.
func (fn FuncTicker) Tick() { fn() }

// Loop owns the frame goroutine. Only one runs at a time: Start cancels and
// replaces any previous goroutine, so a timer never receives double ticks.
type Loop struct {
	mu       sync.Mutex
	interval time.Duration
	tickers  []Ticker
	stopCh   chan struct{}
	running  bool
}

// New creates a stopped loop. A non-positive interval falls back to
// DefaultInterval.
func New(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{interval: interval}
}

// Register adds a ticker to the frame cycle. Safe while the loop runs.
func (loop *Loop) Register(ticker Ticker) {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	loop.tickers = append(loop.tickers, ticker)
}

// Start launches the frame goroutine, replacing a running one.
func (loop *Loop) Start() {
	loop.mu.Lock()
	if loop.running {
		close(loop.stopCh)
	}
	stopCh := make(chan struct{})
	loop.stopCh = stopCh
	loop.running = true
	loop.mu.Unlock()

	go loop.run(stopCh)
}

// Stop halts the frame goroutine.
func (loop *Loop) Stop() {
	loop.mu.Lock()
	defer loop.mu.Unlock()

	if !loop.running {
		return
	}
	close(loop.stopCh)
	loop.running = false
}

func (loop *Loop) run(stopCh chan struct{}) {
	ticker := time.NewTicker(loop.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			loop.tick()
		}
	}
}

func (loop *Loop) tick() {
	loop.mu.Lock()
	tickers := append([]Ticker(nil), loop.tickers...)
	loop.mu.Unlock()

	for _, ticker := range tickers {
		ticker.Tick()
	}
}

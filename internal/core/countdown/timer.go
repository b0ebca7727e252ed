package countdown

import (
	"sync"
	"time"

	"fitclock/internal/core/clock"
	"fitclock/internal/core/model"
)

// settleDelay is the pause after a phase reaches zero before the machine
// advances, long enough for the user to perceive the zero.
const settleDelay = time.Second

// CuePlayer plays an audio cue at a volume in the range 0..1. A failed cue
// is the player's problem; it must not reach the timing loop.
type CuePlayer interface {
	Play(kind model.CueKind, volume float64)
}

// ReconfigureMode selects how Reconfigure treats in-progress state.
type ReconfigureMode int

const (
	// LiveUpdate applies new durations without interrupting an active run:
	// the current phase restarts at its new length and keeps going.
	LiveUpdate ReconfigureMode = iota
	// HardReset stops the timer and discards all progress, as when the
	// timed segment itself has changed.
	HardReset
)

// Options contains runtime collaborators and policies for Timer.
type Options struct {
	// Clock supplies time; nil means the system clock.
	Clock clock.Clock
	// Settings is re-read on every tick so in-flight edits to the sound
	// policy apply immediately. Nil means all cues disabled.
	Settings func() model.CueSettings
	// Player receives cue requests. Nil disables playback.
	Player CuePlayer
	// CueOnManualStart also fires the start cue on a manual Start, not
	// only on automatic phase restarts.
	CueOnManualStart bool
	// ProgressInterval throttles EventProgress emission. Defaults to one
	// second.
	ProgressInterval time.Duration
}

// Snapshot is a point-in-time copy of the timer state.
type Snapshot struct {
	Phase     Phase
	Remaining time.Duration
	Target    time.Duration
	Rest      time.Duration
	Cycle     int
	Progress  float64
}

// Timer is a state machine that alternates work and rest intervals. An
// external loop drives it through Tick; remaining time is recomputed from
// the phase deadline on every tick, never decremented, so a throttled or
// suspended loop cannot drift the countdown.
type Timer struct {
	mu               sync.Mutex
	clock            clock.Clock
	config           model.CountdownConfig
	options          Options
	phase            Phase
	frozenPhase      Phase
	remaining        time.Duration
	deadline         time.Time
	phaseDuration    time.Duration
	halfwayFired     bool
	expired          bool
	cycle            int
	generation       uint64
	settleTask       clock.Task
	onPhaseComplete  func()
	events           []chan Event
	lastProgressSent time.Time
}

// New creates a stopped Timer with the provided interval configuration.
func New(config model.CountdownConfig, options Options) *Timer {
	if options.Clock == nil {
		options.Clock = clock.System
	}
	if options.Settings == nil {
		options.Settings = func() model.CueSettings { return model.CueSettings{} }
	}
	if options.ProgressInterval <= 0 {
		options.ProgressInterval = time.Second
	}
	config = config.Normalized()

	return &Timer{
		clock:         options.Clock,
		config:        config,
		options:       options,
		phase:         PhaseStopped,
		frozenPhase:   PhaseRunning,
		remaining:     config.Target,
		phaseDuration: config.Target,
	}
}

// Subscribe registers a new observer channel.
func (timer *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	timer.mu.Lock()
	timer.events = append(timer.events, ch)
	timer.mu.Unlock()
	return ch
}

// SetOnPhaseComplete registers the hook invoked after a phase expires and
// settles. While a hook is set the machine stops at expiry instead of
// self-advancing; the hook's owner reconfigures and restarts it. A nil hook
// restores standalone cycling.
func (timer *Timer) SetOnPhaseComplete(fn func()) {
	timer.mu.Lock()
	timer.onPhaseComplete = fn
	timer.mu.Unlock()
}

// Start begins the countdown, resuming a paused phase exactly where it
// stopped. Effective only from Stopped.
func (timer *Timer) Start() {
	timer.mu.Lock()
	if timer.phase != PhaseStopped {
		timer.mu.Unlock()
		return
	}

	now := timer.clock.Now()
	policy := timer.options.Settings()

	if timer.remaining > 0 {
		timer.phase = timer.frozenPhase
		timer.deadline = now.Add(timer.remaining)
		timer.emitLocked(Event{
			Type:      EventPhaseChange,
			Phase:     timer.phase,
			Remaining: timer.remaining,
			Cycle:     timer.cycle,
			Progress:  timer.progressLocked(),
			At:        now,
		})
	} else {
		timer.beginPhaseLocked(timer.frozenPhase, timer.phaseDurationLocked(timer.frozenPhase), now)
	}

	var cues []model.CueKind
	if timer.options.CueOnManualStart && policy.Allows(model.CueStart) {
		cues = append(cues, model.CueStart)
	}

	volume := policy.Volume
	timer.mu.Unlock()
	timer.playCues(cues, volume)
}

// Stop freezes the remaining time and the phase it froze in; a later Start
// resumes exactly there. Idempotent when already stopped.
func (timer *Timer) Stop() {
	timer.mu.Lock()
	if timer.phase == PhaseStopped {
		timer.mu.Unlock()
		return
	}

	timer.generation++
	timer.cancelSettleLocked()
	timer.expired = false

	now := timer.clock.Now()
	remaining := timer.deadline.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	timer.remaining = remaining
	timer.frozenPhase = timer.phase
	timer.phase = PhaseStopped

	timer.emitLocked(Event{
		Type:      EventPhaseChange,
		Phase:     PhaseStopped,
		Remaining: remaining,
		Cycle:     timer.cycle,
		Progress:  timer.progressLocked(),
		At:        now,
	})
	timer.mu.Unlock()
}

// Reset forces Stopped with the full configured target and a zeroed cycle
// count. The configuration current at call time applies, including edits
// made while the timer was running.
func (timer *Timer) Reset() {
	timer.mu.Lock()
	timer.generation++
	timer.cancelSettleLocked()
	timer.expired = false
	timer.resetLocked(timer.clock.Now())
	timer.mu.Unlock()
}

// Reconfigure applies a new interval configuration under the given mode.
func (timer *Timer) Reconfigure(config model.CountdownConfig, mode ReconfigureMode) {
	config = config.Normalized()

	timer.mu.Lock()
	timer.generation++
	timer.cancelSettleLocked()
	timer.expired = false
	timer.config = config

	now := timer.clock.Now()
	switch {
	case mode == HardReset:
		timer.resetLocked(now)
	case timer.phase == PhaseStopped:
		// At a phase boundary the frozen display tracks the new duration;
		// a mid-phase pause keeps its remaining time for resume.
		if timer.remaining >= timer.phaseDuration {
			timer.phaseDuration = timer.phaseDurationLocked(timer.frozenPhase)
			timer.remaining = timer.phaseDuration
			timer.halfwayFired = false
		}
	default:
		timer.beginPhaseLocked(timer.phase, timer.phaseDurationLocked(timer.phase), now)
	}
	timer.mu.Unlock()
}

// Tick recomputes the remaining time from the phase deadline and evaluates
// cues. The owning loop calls this once per frame; between ticks the
// reported value holds still.
func (timer *Timer) Tick() {
	timer.mu.Lock()
	if timer.phase == PhaseStopped || timer.expired {
		timer.mu.Unlock()
		return
	}

	now := timer.clock.Now()
	remaining := timer.deadline.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	timer.remaining = remaining

	policy := timer.options.Settings()
	var cues []model.CueKind

	if !timer.halfwayFired && remaining <= timer.phaseDuration/2 {
		timer.halfwayFired = true
		if policy.Allows(model.CueHalfway) {
			cues = append(cues, model.CueHalfway)
		}
	}

	if remaining == 0 {
		timer.expireLocked(now, policy, &cues)
	} else {
		timer.maybeEmitProgressLocked(now)
	}

	volume := policy.Volume
	timer.mu.Unlock()
	timer.playCues(cues, volume)
}

// Close cancels any pending settle task and closes observer channels.
func (timer *Timer) Close() {
	timer.mu.Lock()
	timer.generation++
	timer.cancelSettleLocked()
	events := timer.events
	timer.events = nil
	timer.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Phase returns the current phase.
func (timer *Timer) Phase() Phase {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.phase
}

// Remaining returns the time left in the current phase as of the last tick,
// or the frozen value while stopped.
func (timer *Timer) Remaining() time.Duration {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.remaining
}

// Cycle returns the number of completed work phases.
func (timer *Timer) Cycle() int {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.cycle
}

// Config returns the current interval configuration.
func (timer *Timer) Config() model.CountdownConfig {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.config
}

// Snapshot returns a consistent copy of the current state.
func (timer *Timer) Snapshot() Snapshot {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return Snapshot{
		Phase:     timer.phase,
		Remaining: timer.remaining,
		Target:    timer.config.Target,
		Rest:      timer.config.Rest,
		Cycle:     timer.cycle,
		Progress:  timer.progressLocked(),
	}
}

// expireLocked freezes the phase at zero, fires the end cue for a work
// phase, and schedules the settle task that will advance the machine.
func (timer *Timer) expireLocked(now time.Time, policy model.CueSettings, cues *[]model.CueKind) {
	if timer.phase == PhaseRunning && policy.Allows(model.CueEnd) {
		*cues = append(*cues, model.CueEnd)
	}
	timer.expired = true

	timer.emitLocked(Event{
		Type:      EventProgress,
		Phase:     timer.phase,
		Remaining: 0,
		Cycle:     timer.cycle,
		Progress:  1,
		At:        now,
	})

	generation := timer.generation
	timer.settleTask = timer.clock.AfterFunc(settleDelay, func() {
		timer.settle(generation)
	})
}

// settle advances the machine one settle delay after a phase reached zero.
// A stale task, superseded by a stop, reset, or reconfiguration, is a no-op.
func (timer *Timer) settle(generation uint64) {
	timer.mu.Lock()
	if generation != timer.generation || !timer.expired {
		timer.mu.Unlock()
		return
	}
	timer.settleTask = nil
	timer.expired = false

	expiredPhase := timer.phase
	now := timer.clock.Now()

	if hook := timer.onPhaseComplete; hook != nil {
		// Sequenced mode: stop and hand control to the hook's owner.
		timer.phase = PhaseStopped
		timer.frozenPhase = PhaseRunning
		timer.remaining = 0
		timer.emitLocked(Event{
			Type:      EventPhaseChange,
			Phase:     PhaseStopped,
			Remaining: 0,
			Cycle:     timer.cycle,
			Progress:  1,
			At:        now,
		})
		timer.mu.Unlock()
		hook()
		return
	}

	policy := timer.options.Settings()

	if expiredPhase == PhaseRunning {
		timer.cycle++
		if timer.config.Rest > 0 {
			timer.beginPhaseLocked(PhaseResting, timer.config.Rest, now)
		} else {
			timer.beginPhaseLocked(PhaseRunning, timer.config.Target, now)
		}
		timer.emitLocked(Event{
			Type:      EventCycle,
			Phase:     timer.phase,
			Remaining: timer.remaining,
			Cycle:     timer.cycle,
			At:        now,
		})
	} else {
		timer.beginPhaseLocked(PhaseRunning, timer.config.Target, now)
	}

	var cues []model.CueKind
	if policy.Allows(model.CueStart) {
		cues = append(cues, model.CueStart)
	}

	volume := policy.Volume
	timer.mu.Unlock()
	timer.playCues(cues, volume)
}

func (timer *Timer) beginPhaseLocked(phase Phase, duration time.Duration, now time.Time) {
	timer.phase = phase
	timer.frozenPhase = phase
	timer.phaseDuration = duration
	timer.remaining = duration
	timer.deadline = now.Add(duration)
	timer.halfwayFired = false

	timer.emitLocked(Event{
		Type:      EventPhaseChange,
		Phase:     phase,
		Remaining: duration,
		Cycle:     timer.cycle,
		At:        now,
	})
}

func (timer *Timer) resetLocked(now time.Time) {
	timer.phase = PhaseStopped
	timer.frozenPhase = PhaseRunning
	timer.remaining = timer.config.Target
	timer.phaseDuration = timer.config.Target
	timer.halfwayFired = false
	timer.cycle = 0

	timer.emitLocked(Event{
		Type:      EventPhaseChange,
		Phase:     PhaseStopped,
		Remaining: timer.remaining,
		At:        now,
	})
}

func (timer *Timer) phaseDurationLocked(phase Phase) time.Duration {
	if phase == PhaseResting {
		return timer.config.Rest
	}
	return timer.config.Target
}

func (timer *Timer) cancelSettleLocked() {
	if timer.settleTask != nil {
		timer.settleTask.Cancel()
		timer.settleTask = nil
	}
}

func (timer *Timer) progressLocked() float64 {
	if timer.phaseDuration <= 0 {
		return 1
	}
	progress := float64(timer.phaseDuration-timer.remaining) / float64(timer.phaseDuration)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (timer *Timer) maybeEmitProgressLocked(now time.Time) {
	if !timer.lastProgressSent.IsZero() && now.Sub(timer.lastProgressSent) < timer.options.ProgressInterval {
		return
	}
	timer.lastProgressSent = now

	timer.emitLocked(Event{
		Type:      EventProgress,
		Phase:     timer.phase,
		Remaining: timer.remaining,
		Cycle:     timer.cycle,
		Progress:  timer.progressLocked(),
		At:        now,
	})
}

func (timer *Timer) emitLocked(event Event) {
	events := append([]chan Event(nil), timer.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}

func (timer *Timer) playCues(kinds []model.CueKind, volume float64) {
	if timer.options.Player == nil {
		return
	}
	for _, kind := range kinds {
		timer.playCue(kind, volume)
	}
}

// playCue shields the tick path from a panicking player.
func (timer *Timer) playCue(kind model.CueKind, volume float64) {
	defer func() {
		_ = recover()
	}()
	timer.options.Player.Play(kind, volume)
}

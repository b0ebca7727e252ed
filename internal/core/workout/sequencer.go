package workout

import (
	"errors"
	"sync"

	"fitclock/internal/core/clock"
	"fitclock/internal/core/countdown"
	"fitclock/internal/core/model"
)

// ErrEmptyPlan indicates a plan with no steps was given to NewSequencer.
var ErrEmptyPlan = errors.New("workout plan has no steps")

// CountdownControl is the narrow surface of the countdown machine the
// sequencer drives. The machine stays a black box; the sequencer only
// reconfigures, starts, and stops it between steps.
type CountdownControl interface {
	Reconfigure(config model.CountdownConfig, mode countdown.ReconfigureMode)
	SetOnPhaseComplete(fn func())
	Start()
	Stop()
	Reset()
}

// StopwatchControl gates the session stopwatch.
type StopwatchControl interface {
	Start()
	Stop()
	Reset()
}

// Options contains runtime collaborators for Sequencer.
type Options struct {
	// Clock supplies event timestamps; nil means the system clock.
	Clock clock.Clock
}

// Snapshot is a point-in-time copy of the sequencer state.
type Snapshot struct {
	PlanName      string
	StepIndex     int
	StepCount     int
	Step          Step
	Next          *Step
	RestartKey    int
	WorkoutPaused bool
	StepPaused    bool
	Completed     bool
	Aborted       bool
}

// Sequencer drives the countdown machine through the steps of one workout
// session. It is created when a plan is launched and discarded once the
// session completes or aborts.
type Sequencer struct {
	mu            sync.Mutex
	clock         clock.Clock
	plan          Plan
	machine       CountdownControl
	watch         StopwatchControl
	index         int
	restartKey    int
	workoutPaused bool
	stepPaused    bool
	completed     bool
	aborted       bool
	events        []chan Event
}

// NewSequencer creates a sequencer for one session of plan.
func NewSequencer(plan Plan, machine CountdownControl, watch StopwatchControl, options Options) (*Sequencer, error) {
	if len(plan.Steps) == 0 {
		return nil, ErrEmptyPlan
	}
	if options.Clock == nil {
		options.Clock = clock.System
	}

	return &Sequencer{
		clock:   options.Clock,
		plan:    plan,
		machine: machine,
		watch:   watch,
	}, nil
}

// Subscribe registers a new observer channel. Channels are closed when the
// session completes or aborts.
func (sequencer *Sequencer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	sequencer.mu.Lock()
	sequencer.events = append(sequencer.events, ch)
	sequencer.mu.Unlock()
	return ch
}

// Begin starts the session: the stopwatch restarts from zero and the first
// step is applied to the countdown machine.
func (sequencer *Sequencer) Begin() {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()

	if sequencer.inertLocked() {
		return
	}

	sequencer.machine.SetOnPhaseComplete(sequencer.handlePhaseComplete)
	sequencer.watch.Reset()
	sequencer.watch.Start()
	sequencer.index = 0
	sequencer.applyStepLocked()
}

// NextStep advances to the following step; past the last step the session
// completes and the sequencer goes inert.
func (sequencer *Sequencer) NextStep() {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()
	sequencer.nextStepLocked()
}

// PreviousStep moves back one step, clamped at the first; it never wraps.
func (sequencer *Sequencer) PreviousStep() {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()

	if sequencer.inertLocked() || sequencer.index == 0 {
		return
	}
	sequencer.index--
	sequencer.applyStepLocked()
}

// RestartCurrentStep reapplies the current step from scratch, bumping the
// restart key so observers can tell a restart from a plain progress update.
func (sequencer *Sequencer) RestartCurrentStep() {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()

	if sequencer.inertLocked() {
		return
	}
	sequencer.restartKey++
	sequencer.applyStepLocked()
}

// PauseWorkout halts the whole session: the stopwatch and the countdown
// both stop until ResumeWorkout.
func (sequencer *Sequencer) PauseWorkout() {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()

	if sequencer.inertLocked() || sequencer.workoutPaused {
		return
	}
	sequencer.workoutPaused = true
	sequencer.watch.Stop()
	sequencer.machine.Stop()
}

// ResumeWorkout restarts the stopwatch and, unless the step itself is
// paused or rep-based, the countdown.
func (sequencer *Sequencer) ResumeWorkout() {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()

	if sequencer.inertLocked() || !sequencer.workoutPaused {
		return
	}
	sequencer.workoutPaused = false
	sequencer.watch.Start()
	if !sequencer.stepPaused && !sequencer.currentStepLocked().RepBased {
		sequencer.machine.Start()
	}
}

// PauseStep pauses only the countdown; the session stopwatch keeps
// accumulating overall workout time.
func (sequencer *Sequencer) PauseStep() {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()

	if sequencer.inertLocked() || sequencer.stepPaused {
		return
	}
	sequencer.stepPaused = true
	sequencer.machine.Stop()
}

// ResumeStep resumes the countdown paused by PauseStep.
func (sequencer *Sequencer) ResumeStep() {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()

	if sequencer.inertLocked() || !sequencer.stepPaused {
		return
	}
	sequencer.stepPaused = false
	if !sequencer.workoutPaused && !sequencer.currentStepLocked().RepBased {
		sequencer.machine.Start()
	}
}

// CompleteRepStep acknowledges a repetition-based step. It is the only way
// past such a step; for timed steps it is a no-op.
func (sequencer *Sequencer) CompleteRepStep() {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()

	if sequencer.inertLocked() || !sequencer.currentStepLocked().RepBased {
		return
	}
	sequencer.emitLocked(Event{
		Type:      EventStepComplete,
		StepIndex: sequencer.index,
		Step:      sequencer.currentStepLocked(),
		At:        sequencer.clock.Now(),
	})
	sequencer.nextStepLocked()
}

// Abort ends the session without a completion signal and releases the
// countdown machine back to standalone use.
func (sequencer *Sequencer) Abort() {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()

	if sequencer.inertLocked() {
		return
	}
	sequencer.aborted = true
	sequencer.releaseLocked()
	sequencer.closeLocked()
}

// Snapshot returns a consistent copy of the current state.
func (sequencer *Sequencer) Snapshot() Snapshot {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()

	snap := Snapshot{
		PlanName:      sequencer.plan.Name,
		StepIndex:     sequencer.index,
		StepCount:     len(sequencer.plan.Steps),
		Step:          sequencer.currentStepLocked(),
		RestartKey:    sequencer.restartKey,
		WorkoutPaused: sequencer.workoutPaused,
		StepPaused:    sequencer.stepPaused,
		Completed:     sequencer.completed,
		Aborted:       sequencer.aborted,
	}
	if next := sequencer.index + 1; next < len(sequencer.plan.Steps) {
		step := sequencer.plan.Steps[next]
		snap.Next = &step
	}
	return snap
}

// Plan returns the plan this session runs.
func (sequencer *Sequencer) Plan() Plan {
	return sequencer.plan
}

// handlePhaseComplete is the countdown machine's phase-complete hook: a
// timed step ran out naturally, so record it and move on.
func (sequencer *Sequencer) handlePhaseComplete() {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()

	if sequencer.inertLocked() {
		return
	}
	sequencer.emitLocked(Event{
		Type:      EventStepComplete,
		StepIndex: sequencer.index,
		Step:      sequencer.currentStepLocked(),
		At:        sequencer.clock.Now(),
	})
	sequencer.nextStepLocked()
}

func (sequencer *Sequencer) nextStepLocked() {
	if sequencer.inertLocked() {
		return
	}

	sequencer.index++
	if sequencer.index >= len(sequencer.plan.Steps) {
		sequencer.completeLocked()
		return
	}
	sequencer.applyStepLocked()
}

// applyStepLocked points the countdown machine at the current step. Timed
// steps hard-reset the machine to the step duration with no secondary rest;
// rep-based steps leave it stopped and wait for an explicit acknowledgment.
func (sequencer *Sequencer) applyStepLocked() {
	step := sequencer.currentStepLocked()

	sequencer.emitLocked(Event{
		Type:      EventStepChange,
		StepIndex: sequencer.index,
		Step:      step,
		At:        sequencer.clock.Now(),
	})

	if step.RepBased {
		sequencer.machine.Reset()
		return
	}

	sequencer.machine.Reconfigure(model.CountdownConfig{Target: step.Duration}, countdown.HardReset)
	if !sequencer.workoutPaused && !sequencer.stepPaused {
		sequencer.machine.Start()
	}
}

func (sequencer *Sequencer) completeLocked() {
	sequencer.completed = true
	sequencer.emitLocked(Event{
		Type:      EventSessionComplete,
		StepIndex: len(sequencer.plan.Steps),
		At:        sequencer.clock.Now(),
	})
	sequencer.releaseLocked()
	sequencer.closeLocked()
}

// releaseLocked detaches from the countdown machine and stops the session
// stopwatch.
func (sequencer *Sequencer) releaseLocked() {
	sequencer.machine.SetOnPhaseComplete(nil)
	sequencer.machine.Reset()
	sequencer.watch.Stop()
}

func (sequencer *Sequencer) closeLocked() {
	events := sequencer.events
	sequencer.events = nil
	for _, ch := range events {
		close(ch)
	}
}

func (sequencer *Sequencer) inertLocked() bool {
	return sequencer.completed || sequencer.aborted
}

func (sequencer *Sequencer) currentStepLocked() Step {
	if sequencer.index >= len(sequencer.plan.Steps) {
		return Step{}
	}
	return sequencer.plan.Steps[sequencer.index]
}

func (sequencer *Sequencer) emitLocked(event Event) {
	events := append([]chan Event(nil), sequencer.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}

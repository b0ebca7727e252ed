package workout

import (
	"errors"
	"testing"
	"time"

	"fitclock/internal/core/countdown"
	"fitclock/internal/core/model"
)

type fakeCountdown struct {
	configs []model.CountdownConfig
	modes   []countdown.ReconfigureMode
	hook    func()
	starts  int
	stops   int
	resets  int
}

func (fake *fakeCountdown) Reconfigure(config model.CountdownConfig, mode countdown.ReconfigureMode) {
	fake.configs = append(fake.configs, config)
	fake.modes = append(fake.modes, mode)
}

func (fake *fakeCountdown) SetOnPhaseComplete(fn func()) { fake.hook = fn }
func (fake *fakeCountdown) Start()                       { fake.starts++ }
func (fake *fakeCountdown) Stop()                        { fake.stops++ }
func (fake *fakeCountdown) Reset()                       { fake.resets++ }

// expire simulates a timed step running out and settling.
func (fake *fakeCountdown) expire() {
	if fake.hook != nil {
		fake.hook()
	}
}

type fakeStopwatch struct {
	starts int
	stops  int
	resets int
}

func (fake *fakeStopwatch) Start() { fake.starts++ }
func (fake *fakeStopwatch) Stop()  { fake.stops++ }
func (fake *fakeStopwatch) Reset() { fake.resets++ }

func timedPlan() Plan {
	return Plan{
		Name: "intervals",
		Steps: []Step{
			{ID: "work", Name: "Work", Type: StepExercise, Duration: 30 * time.Second},
			{ID: "recover", Name: "Recover", Type: StepRest, Duration: 15 * time.Second},
		},
	}
}

func newTestSequencer(t *testing.T, plan Plan) (*Sequencer, *fakeCountdown, *fakeStopwatch) {
	t.Helper()
	machine := &fakeCountdown{}
	watch := &fakeStopwatch{}
	sequencer, err := NewSequencer(plan, machine, watch, Options{})
	if err != nil {
		t.Fatalf("NewSequencer() error = %v", err)
	}
	return sequencer, machine, watch
}

func TestEmptyPlanRejected(t *testing.T) {
	_, err := NewSequencer(Plan{Name: "empty"}, &fakeCountdown{}, &fakeStopwatch{}, Options{})
	if !errors.Is(err, ErrEmptyPlan) {
		t.Fatalf("NewSequencer() error = %v, want %v", err, ErrEmptyPlan)
	}
}

func TestBeginAppliesFirstStep(t *testing.T) {
	sequencer, machine, watch := newTestSequencer(t, timedPlan())

	sequencer.Begin()

	if watch.resets != 1 || watch.starts != 1 {
		t.Errorf("stopwatch resets=%d starts=%d after Begin, want 1 and 1", watch.resets, watch.starts)
	}
	if len(machine.configs) != 1 {
		t.Fatalf("machine reconfigured %d times, want 1", len(machine.configs))
	}
	want := model.CountdownConfig{Target: 30 * time.Second}
	if machine.configs[0] != want {
		t.Errorf("step config = %+v, want %+v", machine.configs[0], want)
	}
	if machine.modes[0] != countdown.HardReset {
		t.Errorf("step applied with mode %v, want HardReset", machine.modes[0])
	}
	if machine.starts != 1 {
		t.Errorf("machine starts = %d after Begin, want 1", machine.starts)
	}
	if machine.hook == nil {
		t.Error("phase-complete hook not registered")
	}

	snap := sequencer.Snapshot()
	if snap.StepIndex != 0 || snap.Step.ID != "work" {
		t.Errorf("Snapshot() = %+v, want step 0 %q", snap, "work")
	}
	if snap.Next == nil || snap.Next.ID != "recover" {
		t.Errorf("Snapshot().Next = %+v, want %q", snap.Next, "recover")
	}
}

func TestNaturalExpiryAdvancesThroughPlan(t *testing.T) {
	sequencer, machine, watch := newTestSequencer(t, timedPlan())

	sequencer.Begin()
	machine.expire()

	snap := sequencer.Snapshot()
	if snap.StepIndex != 1 {
		t.Fatalf("StepIndex = %d after first expiry, want 1", snap.StepIndex)
	}
	want := model.CountdownConfig{Target: 15 * time.Second}
	if machine.configs[1] != want {
		t.Errorf("second step config = %+v, want %+v", machine.configs[1], want)
	}

	machine.expire()

	snap = sequencer.Snapshot()
	if !snap.Completed {
		t.Fatal("session not completed after the last expiry")
	}
	if machine.hook != nil {
		t.Error("phase-complete hook still registered after completion")
	}
	if machine.resets == 0 {
		t.Error("machine not reset on completion")
	}
	if watch.stops != 1 {
		t.Errorf("stopwatch stops = %d on completion, want 1", watch.stops)
	}
}

func TestCompletedSessionIsInert(t *testing.T) {
	sequencer, machine, _ := newTestSequencer(t, timedPlan())

	sequencer.Begin()
	machine.expire()
	machine.expire()

	applied := len(machine.configs)
	sequencer.NextStep()
	sequencer.PreviousStep()
	sequencer.RestartCurrentStep()
	sequencer.CompleteRepStep()
	sequencer.PauseWorkout()
	sequencer.Begin()
	machine.expire()

	if len(machine.configs) != applied {
		t.Fatalf("machine reconfigured %d more times after completion", len(machine.configs)-applied)
	}
	if snap := sequencer.Snapshot(); !snap.Completed {
		t.Fatal("Completed flag lost after post-completion calls")
	}
}

func TestPreviousStepClampsAtZero(t *testing.T) {
	sequencer, machine, _ := newTestSequencer(t, timedPlan())

	sequencer.Begin()
	sequencer.PreviousStep() // already at the first step

	if got := len(machine.configs); got != 1 {
		t.Fatalf("machine reconfigured %d times after clamped PreviousStep, want 1", got)
	}

	sequencer.NextStep()
	sequencer.PreviousStep()

	snap := sequencer.Snapshot()
	if snap.StepIndex != 0 {
		t.Fatalf("StepIndex = %d, want 0", snap.StepIndex)
	}
	if got := len(machine.configs); got != 3 {
		t.Fatalf("machine reconfigured %d times, want 3", got)
	}
}

func TestRepStepsNeverStartCountdown(t *testing.T) {
	plan := Plan{
		Name: "strength",
		Steps: []Step{
			{ID: "pushups", Name: "Push-ups", Type: StepExercise, RepBased: true, Reps: 12},
			{ID: "rest", Name: "Rest", Type: StepRest, Duration: 30 * time.Second},
		},
	}
	sequencer, machine, watch := newTestSequencer(t, plan)

	sequencer.Begin()

	if machine.starts != 0 {
		t.Fatalf("machine starts = %d during a rep step, want 0", machine.starts)
	}
	if len(machine.configs) != 0 {
		t.Fatalf("machine reconfigured %d times during a rep step, want 0", len(machine.configs))
	}
	if machine.resets != 1 {
		t.Errorf("machine resets = %d entering a rep step, want 1", machine.resets)
	}
	if watch.starts != 1 {
		t.Errorf("stopwatch starts = %d, want 1 (session clock runs through rep steps)", watch.starts)
	}

	snap := sequencer.Snapshot()
	if !snap.Step.RepBased || snap.Step.Reps != 12 {
		t.Fatalf("Snapshot().Step = %+v, want the rep step", snap.Step)
	}

	sequencer.CompleteRepStep()

	if machine.starts != 1 {
		t.Fatalf("machine starts = %d after acknowledging the rep step, want 1", machine.starts)
	}
	if got := sequencer.Snapshot().StepIndex; got != 1 {
		t.Fatalf("StepIndex = %d after acknowledgment, want 1", got)
	}

	// On a timed step the acknowledgment does nothing.
	sequencer.CompleteRepStep()
	if got := sequencer.Snapshot().StepIndex; got != 1 {
		t.Fatalf("StepIndex = %d after a stray acknowledgment, want 1", got)
	}
}

func TestRestartCurrentStepHardResets(t *testing.T) {
	sequencer, machine, _ := newTestSequencer(t, timedPlan())

	sequencer.Begin()
	sequencer.RestartCurrentStep()

	snap := sequencer.Snapshot()
	if snap.RestartKey != 1 {
		t.Fatalf("RestartKey = %d after restart, want 1", snap.RestartKey)
	}
	if snap.StepIndex != 0 {
		t.Fatalf("StepIndex = %d after restart, want 0", snap.StepIndex)
	}
	if got := len(machine.configs); got != 2 {
		t.Fatalf("machine reconfigured %d times, want 2", got)
	}
	if machine.modes[1] != countdown.HardReset {
		t.Errorf("restart applied with mode %v, want HardReset", machine.modes[1])
	}
	if machine.starts != 2 {
		t.Errorf("machine starts = %d after restart, want 2", machine.starts)
	}
}

func TestPauseWorkoutGatesStopwatchAndCountdown(t *testing.T) {
	sequencer, machine, watch := newTestSequencer(t, timedPlan())

	sequencer.Begin()
	sequencer.PauseWorkout()

	if watch.stops != 1 {
		t.Errorf("stopwatch stops = %d, want 1", watch.stops)
	}
	if machine.stops != 1 {
		t.Errorf("machine stops = %d, want 1", machine.stops)
	}

	sequencer.ResumeWorkout()

	if watch.starts != 2 {
		t.Errorf("stopwatch starts = %d after resume, want 2", watch.starts)
	}
	if machine.starts != 2 {
		t.Errorf("machine starts = %d after resume, want 2", machine.starts)
	}

	snap := sequencer.Snapshot()
	if snap.WorkoutPaused {
		t.Error("WorkoutPaused still set after resume")
	}
}

func TestPauseStepGatesCountdownOnly(t *testing.T) {
	sequencer, machine, watch := newTestSequencer(t, timedPlan())

	sequencer.Begin()
	sequencer.PauseStep()

	if machine.stops != 1 {
		t.Errorf("machine stops = %d, want 1", machine.stops)
	}
	if watch.stops != 0 {
		t.Errorf("stopwatch stops = %d, want 0 (session clock keeps running)", watch.stops)
	}

	sequencer.ResumeStep()

	if machine.starts != 2 {
		t.Errorf("machine starts = %d after resume, want 2", machine.starts)
	}
	if watch.starts != 1 {
		t.Errorf("stopwatch starts = %d, want 1", watch.starts)
	}
}

func TestAdvanceWhileStepPausedDoesNotStart(t *testing.T) {
	sequencer, machine, _ := newTestSequencer(t, timedPlan())

	sequencer.Begin()
	sequencer.PauseStep()
	sequencer.NextStep()

	if machine.starts != 1 {
		t.Fatalf("machine starts = %d while step-paused, want 1 (from Begin only)", machine.starts)
	}

	sequencer.ResumeStep()
	if machine.starts != 2 {
		t.Fatalf("machine starts = %d after resume, want 2", machine.starts)
	}
}

func TestAbortReleasesMachine(t *testing.T) {
	sequencer, machine, watch := newTestSequencer(t, timedPlan())

	sequencer.Begin()
	sequencer.Abort()

	if machine.hook != nil {
		t.Error("phase-complete hook still registered after Abort")
	}
	if machine.resets == 0 {
		t.Error("machine not reset on Abort")
	}
	if watch.stops != 1 {
		t.Errorf("stopwatch stops = %d on Abort, want 1", watch.stops)
	}

	applied := len(machine.configs)
	sequencer.NextStep()
	if len(machine.configs) != applied {
		t.Fatal("aborted sequencer still drives the machine")
	}
	if snap := sequencer.Snapshot(); !snap.Aborted {
		t.Fatal("Aborted flag not set")
	}
}

func TestEventSequenceThroughCompletion(t *testing.T) {
	sequencer, machine, _ := newTestSequencer(t, timedPlan())
	events := sequencer.Subscribe(16)

	sequencer.Begin()
	machine.expire()
	machine.expire()

	var types []EventType
	for event := range events { // closed on completion
		types = append(types, event.Type)
	}

	want := []EventType{
		EventStepChange,
		EventStepComplete,
		EventStepChange,
		EventStepComplete,
		EventSessionComplete,
	}
	if len(types) != len(want) {
		t.Fatalf("event types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("event[%d] = %v, want %v (full sequence %v)", i, types[i], want[i], types)
		}
	}
}

func TestDefaultPlansAreUsable(t *testing.T) {
	plans := DefaultPlans()
	if len(plans) == 0 {
		t.Fatal("DefaultPlans() returned no plans")
	}

	for _, plan := range plans {
		if plan.Name == "" {
			t.Error("plan with empty name")
		}
		if len(plan.Steps) == 0 {
			t.Errorf("plan %q has no steps", plan.Name)
			continue
		}
		for _, step := range plan.Steps {
			if step.ID == "" || step.Name == "" {
				t.Errorf("plan %q has a step missing ID or Name: %+v", plan.Name, step)
			}
			if step.RepBased && step.Reps <= 0 {
				t.Errorf("rep step %q has no rep target", step.ID)
			}
			if !step.RepBased && step.Duration < model.MinInterval {
				t.Errorf("timed step %q is shorter than the minimum interval", step.ID)
			}
		}
	}
}

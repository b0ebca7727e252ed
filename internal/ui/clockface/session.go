package clockface

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"fitclock/internal/core/workout"
	"fitclock/internal/i18n"
)

func (face *Window) handleBeginWorkout() {
	index := face.planSelect.SelectedIndex()
	if index < 0 || index >= len(face.plans) {
		return
	}

	session, err := workout.NewSequencer(face.plans[index], face.machine, face.watch, workout.Options{})
	if err != nil {
		dialog.ShowError(err, face.window)
		return
	}

	events := session.Subscribe(16)
	face.mu.Lock()
	face.session = session
	face.mu.Unlock()

	go face.watchSession(session, events)
	session.Begin()
	face.Refresh()
}

// watchSession consumes session events until the channel closes; the close
// marks the end of the session whether it completed or was aborted.
func (face *Window) watchSession(session *workout.Sequencer, events <-chan workout.Event) {
	completed := false
	for event := range events {
		switch event.Type {
		case workout.EventSessionComplete:
			completed = true
		case workout.EventStepChange:
			face.Refresh()
		}
	}

	face.mu.Lock()
	if face.session == session {
		face.session = nil
	}
	face.mu.Unlock()

	if completed {
		fyne.Do(func() {
			dialog.ShowInformation(i18n.T("Workout"), i18n.T("Workout complete!"), face.window)
		})
	}
	face.Refresh()
}

// withSession runs fn against the active session, if any, and repaints.
func (face *Window) withSession(fn func(session *workout.Sequencer)) {
	face.mu.Lock()
	session := face.session
	face.mu.Unlock()

	if session == nil {
		return
	}
	fn(session)
	face.Refresh()
}

func (face *Window) handleNextStep() {
	face.withSession(func(session *workout.Sequencer) {
		session.NextStep()
	})
}

func (face *Window) handlePreviousStep() {
	face.withSession(func(session *workout.Sequencer) {
		session.PreviousStep()
	})
}

func (face *Window) handleRestartStep() {
	face.withSession(func(session *workout.Sequencer) {
		session.RestartCurrentStep()
	})
}

func (face *Window) handlePauseToggle() {
	face.withSession(func(session *workout.Sequencer) {
		if session.Snapshot().WorkoutPaused {
			session.ResumeWorkout()
			return
		}
		session.PauseWorkout()
	})
}

func (face *Window) handleStepPauseToggle() {
	face.withSession(func(session *workout.Sequencer) {
		if session.Snapshot().StepPaused {
			session.ResumeStep()
			return
		}
		session.PauseStep()
	})
}

func (face *Window) handleRepDone() {
	face.withSession(func(session *workout.Sequencer) {
		session.CompleteRepStep()
	})
}

func (face *Window) handleAbort() {
	face.withSession(func(session *workout.Sequencer) {
		session.Abort()
	})
}

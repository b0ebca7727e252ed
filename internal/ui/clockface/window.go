package clockface

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"fitclock/internal/core/countdown"
	"fitclock/internal/core/stopwatch"
	"fitclock/internal/core/workout"
	"fitclock/internal/i18n"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	colorReady = color.NRGBA{R: 158, G: 158, B: 158, A: 255}
	colorWork  = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	colorRest  = color.NRGBA{R: 100, G: 181, B: 246, A: 255}
)

// Window is the main clock face: the interval countdown with its controls,
// the session stopwatch, and the workout panel.
type Window struct {
	app    fyne.App
	window fyne.Window

	machine *countdown.Timer
	watch   *stopwatch.Stopwatch
	plans   []workout.Plan

	mu      sync.Mutex
	session *workout.Sequencer

	phaseLabel  *canvas.Text
	timeLabel   *canvas.Text
	cycleLabel  *widget.Label
	progressBar *widget.ProgressBar
	startButton *widget.Button
	stopButton  *widget.Button
	resetButton *widget.Button

	watchLabel       *canvas.Text
	watchStartButton *widget.Button
	watchStopButton  *widget.Button
	watchResetButton *widget.Button

	planSelect      *widget.Select
	beginButton     *widget.Button
	stepLabel       *widget.Label
	nextStepLabel   *widget.Label
	prevButton      *widget.Button
	stepPauseButton *widget.Button
	nextButton      *widget.Button
	restartButton   *widget.Button
	pauseButton     *widget.Button
	repDoneButton   *widget.Button
	abortButton     *widget.Button

	onOpenSettings func()
}

// New creates the main window. The window starts hidden; closing it hides
// it again so the app keeps running from the tray.
func New(app fyne.App, machine *countdown.Timer, watch *stopwatch.Stopwatch, plans []workout.Plan) *Window {
	window := app.NewWindow("FitClock")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	face := &Window{
		app:     app,
		window:  window,
		machine: machine,
		watch:   watch,
		plans:   plans,
	}

	face.phaseLabel = canvas.NewText(i18n.T("Ready"), colorReady)
	face.phaseLabel.Alignment = fyne.TextAlignCenter
	face.phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	face.phaseLabel.TextSize = 18

	face.timeLabel = canvas.NewText("00:00", color.White)
	face.timeLabel.Alignment = fyne.TextAlignCenter
	face.timeLabel.TextStyle = fyne.TextStyle{Bold: true}
	face.timeLabel.TextSize = 52

	face.progressBar = widget.NewProgressBar()

	face.cycleLabel = widget.NewLabel(fmt.Sprintf("%s: 0", i18n.T("Cycles")))
	face.cycleLabel.Alignment = fyne.TextAlignCenter

	face.startButton = widget.NewButton(i18n.T("Start"), face.handleStart)
	face.stopButton = widget.NewButton(i18n.T("Stop"), face.handleStop)
	face.resetButton = widget.NewButton(i18n.T("Reset"), face.handleReset)

	face.watchLabel = canvas.NewText("00:00", color.White)
	face.watchLabel.Alignment = fyne.TextAlignCenter
	face.watchLabel.TextStyle = fyne.TextStyle{Bold: true}
	face.watchLabel.TextSize = 28

	face.watchStartButton = widget.NewButton(i18n.T("Start"), face.handleWatchStart)
	face.watchStopButton = widget.NewButton(i18n.T("Stop"), face.handleWatchStop)
	face.watchResetButton = widget.NewButton(i18n.T("Reset"), face.handleWatchReset)

	planNames := make([]string, 0, len(plans))
	for _, plan := range plans {
		planNames = append(planNames, plan.Name)
	}
	face.planSelect = widget.NewSelect(planNames, nil)
	if len(planNames) > 0 {
		face.planSelect.SetSelectedIndex(0)
	}

	face.beginButton = widget.NewButton(i18n.T("Begin"), face.handleBeginWorkout)
	face.stepLabel = widget.NewLabel("")
	face.stepLabel.Alignment = fyne.TextAlignCenter
	face.nextStepLabel = widget.NewLabel("")
	face.nextStepLabel.Alignment = fyne.TextAlignCenter

	face.prevButton = widget.NewButtonWithIcon("", theme.MediaSkipPreviousIcon(), face.handlePreviousStep)
	face.stepPauseButton = widget.NewButtonWithIcon("", theme.MediaPauseIcon(), face.handleStepPauseToggle)
	face.nextButton = widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), face.handleNextStep)
	face.restartButton = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), face.handleRestartStep)
	face.pauseButton = widget.NewButton(i18n.T("Pause"), face.handlePauseToggle)
	face.repDoneButton = widget.NewButton(i18n.T("Done"), face.handleRepDone)
	face.abortButton = widget.NewButton(i18n.T("Abort"), face.handleAbort)

	titleLabel := canvas.NewText("FitClock", color.White)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 21

	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if face.onOpenSettings != nil {
			face.onOpenSettings()
		}
	})

	header := container.NewBorder(nil, nil, nil, settingsButton, titleLabel)

	countdownSection := container.NewVBox(
		face.phaseLabel,
		face.timeLabel,
		face.progressBar,
		face.cycleLabel,
		container.NewHBox(layout.NewSpacer(), face.startButton, face.stopButton, face.resetButton, layout.NewSpacer()),
	)

	watchSection := container.NewVBox(
		widget.NewLabelWithStyle(i18n.T("Stopwatch"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		face.watchLabel,
		container.NewHBox(layout.NewSpacer(), face.watchStartButton, face.watchStopButton, face.watchResetButton, layout.NewSpacer()),
	)

	workoutSection := container.NewVBox(
		widget.NewLabelWithStyle(i18n.T("Workout"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel(i18n.T("Plan")), face.beginButton, face.planSelect),
		face.stepLabel,
		face.nextStepLabel,
		container.NewHBox(layout.NewSpacer(), face.prevButton, face.stepPauseButton, face.nextButton, face.restartButton, layout.NewSpacer()),
		container.NewHBox(layout.NewSpacer(), face.pauseButton, face.repDoneButton, face.abortButton, layout.NewSpacer()),
	)

	content := container.NewVBox(
		header,
		countdownSection,
		widget.NewSeparator(),
		watchSection,
		widget.NewSeparator(),
		workoutSection,
	)

	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(420, 680))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	face.Refresh()
	return face
}

// SetOnOpenSettings wires the gear button in the header.
func (face *Window) SetOnOpenSettings(handler func()) {
	face.onOpenSettings = handler
}

// Show brings the main window to the front.
func (face *Window) Show() {
	face.window.Show()
	face.window.RequestFocus()
}

// Window exposes the underlying window for app wiring.
func (face *Window) Window() fyne.Window {
	return face.window
}

// Refresh repaints the whole face from current engine state. Safe to call
// from any goroutine.
func (face *Window) Refresh() {
	snap := face.machine.Snapshot()
	watchSnap := face.watch.Snapshot()

	face.mu.Lock()
	session := face.session
	face.mu.Unlock()

	inSession := session != nil
	var sessionSnap workout.Snapshot
	if inSession {
		sessionSnap = session.Snapshot()
	}

	fyne.Do(func() {
		face.applyCountdownState(snap, inSession)
		face.applyWatchState(watchSnap, inSession)
		face.applySessionState(sessionSnap, inSession)
	})
}

func (face *Window) applyCountdownState(snap countdown.Snapshot, inSession bool) {
	face.timeLabel.Text = formatRemaining(snap.Remaining)

	switch snap.Phase {
	case countdown.PhaseRunning:
		face.phaseLabel.Text = i18n.T("Work")
		face.phaseLabel.Color = colorWork
	case countdown.PhaseResting:
		face.phaseLabel.Text = i18n.T("Rest")
		face.phaseLabel.Color = colorRest
	default:
		if snap.Remaining > 0 && snap.Remaining < snap.Target {
			face.phaseLabel.Text = i18n.T("Paused")
		} else {
			face.phaseLabel.Text = i18n.T("Ready")
		}
		face.phaseLabel.Color = colorReady
	}

	face.progressBar.SetValue(snap.Progress)
	face.cycleLabel.SetText(fmt.Sprintf("%s: %d", i18n.T("Cycles"), snap.Cycle))

	if inSession {
		face.startButton.Disable()
		face.stopButton.Disable()
		face.resetButton.Disable()
	} else {
		face.startButton.Enable()
		face.stopButton.Enable()
		face.resetButton.Enable()
	}

	face.phaseLabel.Refresh()
	face.timeLabel.Refresh()
}

func (face *Window) applyWatchState(snap stopwatch.Snapshot, inSession bool) {
	face.watchLabel.Text = formatClock(snap.Elapsed)
	if inSession {
		face.watchStartButton.Disable()
		face.watchStopButton.Disable()
		face.watchResetButton.Disable()
	} else {
		face.watchStartButton.Enable()
		face.watchStopButton.Enable()
		face.watchResetButton.Enable()
	}
	face.watchLabel.Refresh()
}

func (face *Window) applySessionState(snap workout.Snapshot, inSession bool) {
	if !inSession {
		face.stepLabel.SetText("")
		face.nextStepLabel.SetText("")
		face.pauseButton.SetText(i18n.T("Pause"))
		face.stepPauseButton.SetIcon(theme.MediaPauseIcon())
		face.planSelect.Enable()
		face.beginButton.Enable()
		face.prevButton.Disable()
		face.stepPauseButton.Disable()
		face.nextButton.Disable()
		face.restartButton.Disable()
		face.pauseButton.Disable()
		face.repDoneButton.Disable()
		face.abortButton.Disable()
		return
	}

	face.planSelect.Disable()
	face.beginButton.Disable()

	face.stepLabel.SetText(describeStep(snap.StepIndex, snap.StepCount, snap.Step))
	if snap.Next != nil {
		face.nextStepLabel.SetText(fmt.Sprintf("%s: %s", i18n.T("Next"), snap.Next.Name))
	} else {
		face.nextStepLabel.SetText("")
	}

	face.prevButton.Enable()
	face.nextButton.Enable()
	face.restartButton.Enable()
	face.pauseButton.Enable()
	face.abortButton.Enable()

	if snap.WorkoutPaused {
		face.pauseButton.SetText(i18n.T("Resume"))
	} else {
		face.pauseButton.SetText(i18n.T("Pause"))
	}

	if snap.StepPaused {
		face.stepPauseButton.SetIcon(theme.MediaPlayIcon())
	} else {
		face.stepPauseButton.SetIcon(theme.MediaPauseIcon())
	}

	if snap.Step.RepBased {
		face.repDoneButton.Enable()
		face.stepPauseButton.Disable()
	} else {
		face.repDoneButton.Disable()
		face.stepPauseButton.Enable()
	}
}

func (face *Window) handleStart() {
	face.machine.Start()
	face.Refresh()
}

func (face *Window) handleStop() {
	face.machine.Stop()
	face.Refresh()
}

func (face *Window) handleReset() {
	face.machine.Reset()
	face.Refresh()
}

func (face *Window) handleWatchStart() {
	face.watch.Start()
	face.Refresh()
}

func (face *Window) handleWatchStop() {
	face.watch.Stop()
	face.Refresh()
}

func (face *Window) handleWatchReset() {
	face.watch.Reset()
	face.Refresh()
}

func describeStep(index, count int, step workout.Step) string {
	name := step.Name
	if step.RepBased {
		name = fmt.Sprintf("%s ×%d", name, step.Reps)
	}
	return fmt.Sprintf("%d/%d  %s", index+1, count, name)
}

func formatClock(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	totalSeconds := int(value.Seconds())
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	if minutes >= 60 {
		hours := minutes / 60
		minutes = minutes % 60
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// formatRemaining rounds up so a fresh 30s phase reads 00:30, not 00:29.
func formatRemaining(value time.Duration) string {
	if value <= 0 {
		return formatClock(0)
	}
	return formatClock(value + time.Second - time.Nanosecond)
}

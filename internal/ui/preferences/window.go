package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"fitclock/internal/i18n"
)

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	onSave    func(Settings)
	onCancel  func()
	workDur   *widget.Entry
	restDur   *widget.Entry
	sounds    *widget.Check
	cueStart  *widget.Check
	cueHalf   *widget.Check
	cueEnd    *widget.Check
	volume    *widget.Slider
	stealth   *widget.Check
	autostart *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow(i18n.T("FitClock Settings"))

	workDur := widget.NewEntry()
	restDur := widget.NewEntry()
	workDur.SetText(fmt.Sprintf("%d", int(settings.WorkDuration.Seconds())))
	restDur.SetText(fmt.Sprintf("%d", int(settings.RestDuration.Seconds())))

	sounds := widget.NewCheck(i18n.T("Enable sounds"), nil)
	sounds.SetChecked(settings.SoundsEnabled)

	cueStart := widget.NewCheck(i18n.T("Beep when a phase starts"), nil)
	cueStart.SetChecked(settings.CueOnStart)

	cueHalf := widget.NewCheck(i18n.T("Beep at the halfway mark"), nil)
	cueHalf.SetChecked(settings.CueOnHalfway)

	cueEnd := widget.NewCheck(i18n.T("Beep when work ends"), nil)
	cueEnd.SetChecked(settings.CueOnEnd)

	volume := widget.NewSlider(0, 1)
	volume.Value = settings.Volume
	volume.Step = 0.05

	stealth := widget.NewCheck(i18n.T("Stealth mode (mute all cues)"), nil)
	stealth.SetChecked(settings.Stealth)

	autostart := widget.NewCheck(i18n.T("Start at login"), nil)
	autostart.SetChecked(settings.Autostart)

	form := container.NewVBox(
		widget.NewLabelWithStyle(i18n.T("Intervals"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel(i18n.T("Work interval")), workDur, widget.NewLabel(i18n.T("sec"))),
		container.NewHBox(widget.NewLabel(i18n.T("Rest interval")), restDur, widget.NewLabel(i18n.T("sec"))),
		widget.NewLabelWithStyle(i18n.T("Sound"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sounds,
		cueStart,
		cueHalf,
		cueEnd,
		widget.NewLabel(i18n.T("Volume")),
		volume,
		stealth,
		widget.NewLabelWithStyle(i18n.T("System"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		autostart,
	)

	saveButton := widget.NewButton(i18n.T("Save"), nil)
	cancelButton := widget.NewButton(i18n.T("Cancel"), nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 540))

	prefs := &Window{
		window:    window,
		settings:  settings,
		onSave:    onSave,
		workDur:   workDur,
		restDur:   restDur,
		sounds:    sounds,
		cueStart:  cueStart,
		cueHalf:   cueHalf,
		cueEnd:    cueEnd,
		volume:    volume,
		stealth:   stealth,
		autostart: autostart,
	}

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.workDur.SetText(fmt.Sprintf("%d", int(settings.WorkDuration.Seconds())))
	prefs.restDur.SetText(fmt.Sprintf("%d", int(settings.RestDuration.Seconds())))
	prefs.sounds.SetChecked(settings.SoundsEnabled)
	prefs.cueStart.SetChecked(settings.CueOnStart)
	prefs.cueHalf.SetChecked(settings.CueOnHalfway)
	prefs.cueEnd.SetChecked(settings.CueOnEnd)
	prefs.volume.Value = settings.Volume
	prefs.volume.Refresh()
	prefs.stealth.SetChecked(settings.Stealth)
	prefs.autostart.SetChecked(settings.Autostart)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if seconds, ok := parsePositiveInt(prefs.workDur.Text); ok {
		settings.WorkDuration = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parseNonNegativeInt(prefs.restDur.Text); ok {
		settings.RestDuration = time.Duration(seconds) * time.Second
	}

	settings.SoundsEnabled = prefs.sounds.Checked
	settings.CueOnStart = prefs.cueStart.Checked
	settings.CueOnHalfway = prefs.cueHalf.Checked
	settings.CueOnEnd = prefs.cueEnd.Checked
	settings.Volume = prefs.volume.Value
	settings.Stealth = prefs.stealth.Checked
	settings.Autostart = prefs.autostart.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

// parseNonNegativeInt also admits zero; a zero rest disables the rest phase.
func parseNonNegativeInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}

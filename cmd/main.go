package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"fitclock/internal/audio"
	"fitclock/internal/core/countdown"
	"fitclock/internal/core/model"
	"fitclock/internal/core/stopwatch"
	"fitclock/internal/core/tickloop"
	"fitclock/internal/i18n"
	"fitclock/internal/platform"
	"fitclock/internal/storage"
	"fitclock/internal/ui/clockface"
	"fitclock/internal/ui/preferences"
	"fitclock/internal/ui/tray"
	"fitclock/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "FitClock"

func main() {
	startHidden := flag.Bool("hidden", false, "start minimized to the system tray")
	flag.Parse()

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}
	store := preferences.NewStore(settings)

	plans, err := storage.LoadPlans(appName)
	if err != nil {
		log.Printf("load plans: %v", err)
	}

	fyneApp := app.NewWithID("com.fitclock.app")
	fyneApp.Settings().SetTheme(clockface.NewDarkTheme())
	activeIcon := resources.MustIcon("fitclock.svg")
	mutedIcon := resources.MustIcon("fitclock-muted.svg")
	fyneApp.SetIcon(activeIcon)

	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return
	}

	player := audio.NewPlayer()
	machine := countdown.New(store.Current().CountdownConfig(), countdown.Options{
		Settings: func() model.CueSettings {
			return store.Current().CueSettings()
		},
		Player:           player,
		CueOnManualStart: true,
	})
	watch := stopwatch.New(nil)

	face := clockface.New(fyneApp, machine, watch, plans)
	desktopApp.SetSystemTrayWindow(face.Window())

	autostart := platform.NewAutostart(appName)
	if settings.Autostart {
		if err := autostart.Apply(true); err != nil {
			log.Printf("apply autostart: %v", err)
		}
	}

	var trayManager *tray.Manager
	applyMuteState := func(muted bool) {
		if muted {
			desktopApp.SetSystemTrayIcon(mutedIcon)
		} else {
			desktopApp.SetSystemTrayIcon(activeIcon)
		}
		if trayManager != nil {
			trayManager.SetMuted(muted)
		}
	}

	prefsWindow := preferences.New(fyneApp, store.Current(), func(updated preferences.Settings) {
		if err := storage.SaveSettings(appName, updated); err != nil {
			log.Printf("save settings: %v", err)
		}
		store.Replace(updated)
		machine.Reconfigure(updated.CountdownConfig(), countdown.LiveUpdate)
		if err := autostart.Apply(updated.Autostart); err != nil {
			log.Printf("apply autostart: %v", err)
		}
		applyMuteState(updated.Muted)
		face.Refresh()
	})
	face.SetOnOpenSettings(func() {
		prefsWindow.UpdateSettings(store.Current())
		prefsWindow.Show()
	})

	loop := tickloop.New(tickloop.DefaultInterval)
	loop.Register(tickloop.FuncTicker(machine.Tick))
	loop.Register(tickloop.FuncTicker(watch.Tick))
	loop.Register(tickloop.FuncTicker(face.Refresh))

	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnShow: func() {
			face.Show()
		},
		OnPreferences: func() {
			prefsWindow.UpdateSettings(store.Current())
			prefsWindow.Show()
		},
		OnToggleStart: func() {
			if machine.Phase() == countdown.PhaseStopped {
				machine.Start()
			} else {
				machine.Stop()
			}
			face.Refresh()
		},
		OnReset: func() {
			machine.Reset()
			face.Refresh()
		},
		OnToggleMute: func() {
			muted := !store.Current().Muted
			store.SetMuted(muted)
			if err := storage.SaveSettings(appName, store.Current()); err != nil {
				log.Printf("save settings: %v", err)
			}
			applyMuteState(muted)
			prefsWindow.UpdateSettings(store.Current())
		},
		OnQuit: func() {
			loop.Stop()
			machine.Close()
			fyneApp.Quit()
		},
	})
	applyMuteState(settings.Muted)
	trayManager.SetStatus(statusLine(machine.Phase(), machine.Remaining()))

	events := machine.Subscribe(16)
	go func() {
		for event := range events {
			switch event.Type {
			case countdown.EventPhaseChange:
				trayManager.SetRunning(event.Phase != countdown.PhaseStopped)
				trayManager.SetStatus(statusLine(event.Phase, event.Remaining))
			case countdown.EventProgress:
				trayManager.SetStatus(statusLine(event.Phase, event.Remaining))
			}
		}
	}()

	go func() {
		for range guard.ShowRequests() {
			fyne.Do(face.Show)
		}
	}()

	loop.Start()
	if !*startHidden {
		face.Show()
	}
	fyneApp.Run()
}

func statusLine(phase countdown.Phase, remaining time.Duration) string {
	label := i18n.T("Ready")
	switch phase {
	case countdown.PhaseRunning:
		label = i18n.T("Work")
	case countdown.PhaseResting:
		label = i18n.T("Rest")
	}
	return fmt.Sprintf("%s %s", label, formatRemaining(remaining))
}

func formatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

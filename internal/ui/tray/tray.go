package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"fitclock/internal/i18n"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnToggleStart func()
	OnReset       func()
	OnToggleMute  func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	startItem   *fyne.MenuItem
	muteItem    *fyne.MenuItem
	callbacks   Callbacks
	running     bool
	muted       bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem(fmt.Sprintf("%s 00:00", i18n.T("Ready")), nil)
	manager.statusItem.Disabled = true

	manager.startItem = fyne.NewMenuItem(i18n.T("Start"), func() {
		if manager.callbacks.OnToggleStart != nil {
			manager.callbacks.OnToggleStart()
		}
	})

	manager.muteItem = fyne.NewMenuItem(i18n.T("Mute"), func() {
		if manager.callbacks.OnToggleMute != nil {
			manager.callbacks.OnToggleMute()
		}
	})

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status line shown at the top of the menu.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.statusItem.Label = status
	manager.refreshMenu()
}

// SetRunning flips the start item between Start and Stop.
func (manager *Manager) SetRunning(running bool) {
	manager.running = running
	if running {
		manager.startItem.Label = i18n.T("Stop")
	} else {
		manager.startItem.Label = i18n.T("Start")
	}
	manager.refreshMenu()
}

// SetMuted flips the mute item between Mute and Unmute.
func (manager *Manager) SetMuted(muted bool) {
	manager.muted = muted
	if muted {
		manager.muteItem.Label = i18n.T("Unmute")
	} else {
		manager.muteItem.Label = i18n.T("Mute")
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("FitClock",
		manager.statusItem,
		fyne.NewMenuItem(i18n.T("Show"), func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		manager.startItem,
		fyne.NewMenuItem(i18n.T("Reset"), func() {
			if manager.callbacks.OnReset != nil {
				manager.callbacks.OnReset()
			}
		}),
		manager.muteItem,
		fyne.NewMenuItem(i18n.T("Settings"), func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem(i18n.T("Quit"), func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}

package platform

import (
	"fmt"
	"os"
)

// HiddenFlag is passed to autostarted launches so they come up in the tray
// without opening the main window.
const HiddenFlag = "--hidden"

// Autostart manages the launch-at-login registration of the app binary.
type Autostart struct {
	appName string
}

// NewAutostart creates an autostart manager for appName.
func NewAutostart(appName string) *Autostart {
	return &Autostart{appName: appName}
}

// Apply registers or removes the login entry for the current executable.
func (auto *Autostart) Apply(enabled bool) error {
	if auto.appName == "" {
		return fmt.Errorf("apply autostart: app name is empty")
	}
	if !enabled {
		return disableAutostart(auto.appName)
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("apply autostart: resolve executable: %w", err)
	}
	return enableAutostart(auto.appName, execPath)
}

package clockface

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// darkTheme pins the dark variant so the fixed label colors stay readable
// regardless of the desktop preference.
type darkTheme struct {
	fyne.Theme
}

// NewDarkTheme wraps the default theme with a forced dark variant.
func NewDarkTheme() fyne.Theme {
	return &darkTheme{Theme: theme.DefaultTheme()}
}

func (t *darkTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, theme.VariantDark)
}

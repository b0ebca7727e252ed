package preferences

import (
	"time"

	"fitclock/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	WorkDuration time.Duration
	RestDuration time.Duration

	SoundsEnabled bool
	Muted         bool
	Stealth       bool
	Volume        float64
	CueOnStart    bool
	CueOnHalfway  bool
	CueOnEnd      bool

	Autostart bool
}

// DefaultSettings returns default settings for FitClock.
func DefaultSettings() Settings {
	return Settings{
		WorkDuration:  45 * time.Second,
		RestDuration:  15 * time.Second,
		SoundsEnabled: true,
		Volume:        0.7,
		CueOnStart:    true,
		CueOnHalfway:  true,
		CueOnEnd:      true,
		Autostart:     false,
	}
}

// CountdownConfig converts settings to the countdown interval configuration.
func (settings Settings) CountdownConfig() model.CountdownConfig {
	return model.CountdownConfig{
		Target: settings.WorkDuration,
		Rest:   settings.RestDuration,
	}
}

// CueSettings converts settings to the sound policy read on every tick.
func (settings Settings) CueSettings() model.CueSettings {
	return model.CueSettings{
		Enabled:   settings.SoundsEnabled,
		Muted:     settings.Muted,
		Stealth:   settings.Stealth,
		Volume:    settings.Volume,
		OnStart:   settings.CueOnStart,
		OnHalfway: settings.CueOnHalfway,
		OnEnd:     settings.CueOnEnd,
	}
}

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"fitclock/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkSeconds int `yaml:"work_seconds"`
	// Zero is meaningful for these two, so a missing key must stay
	// distinguishable from an explicit zero.
	RestSeconds   *int     `yaml:"rest_seconds"`
	Volume        *float64 `yaml:"volume"`
	SoundsEnabled bool     `yaml:"sounds_enabled"`
	Muted         bool     `yaml:"muted"`
	Stealth       bool     `yaml:"stealth"`
	CueOnStart    bool     `yaml:"cue_on_start"`
	CueOnHalfway  bool     `yaml:"cue_on_halfway"`
	CueOnEnd      bool     `yaml:"cue_on_end"`
	Autostart     bool     `yaml:"autostart"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	configPath, err := resolveConfigPath(appName, settingsFileName)
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName, settingsFileName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	restSeconds := int(settings.RestDuration / time.Second)
	volume := settings.Volume
	fileData := yamlSettings{
		WorkSeconds:   int(settings.WorkDuration / time.Second),
		RestSeconds:   &restSeconds,
		Volume:        &volume,
		SoundsEnabled: settings.SoundsEnabled,
		Muted:         settings.Muted,
		Stealth:       settings.Stealth,
		CueOnStart:    settings.CueOnStart,
		CueOnHalfway:  settings.CueOnHalfway,
		CueOnEnd:      settings.CueOnEnd,
		Autostart:     settings.Autostart,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName, fileName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, fileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.WorkSeconds > 0 {
		settings.WorkDuration = time.Duration(fileData.WorkSeconds) * time.Second
	}
	if fileData.RestSeconds != nil && *fileData.RestSeconds >= 0 {
		settings.RestDuration = time.Duration(*fileData.RestSeconds) * time.Second
	}
	if fileData.Volume != nil && *fileData.Volume >= 0 && *fileData.Volume <= 1 {
		settings.Volume = *fileData.Volume
	}

	settings.SoundsEnabled = fileData.SoundsEnabled
	settings.Muted = fileData.Muted
	settings.Stealth = fileData.Stealth
	settings.CueOnStart = fileData.CueOnStart
	settings.CueOnHalfway = fileData.CueOnHalfway
	settings.CueOnEnd = fileData.CueOnEnd
	settings.Autostart = fileData.Autostart
}

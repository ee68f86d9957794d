package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/seanGSISG/ollama-tray/internal/models"
)

// LoadSettings loads the global settings from ~/.ollama-tray/settings.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}

	settings := models.NewSettings()
	if err := readYAML(path, settings); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("load settings: %w", err)
	}
	applyDefaults(settings)
	return settings, nil
}

// SaveSettings saves the global settings to ~/.ollama-tray/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return writeYAML(path, settings)
}

// SettingsFileExists reports whether a settings file has been written.
func SettingsFileExists() bool {
	path, err := GlobalSettingsFile()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// applyDefaults fills in zero values left by hand-edited settings files.
func applyDefaults(s *models.Settings) {
	defaults := models.NewSettings()
	if s.ServiceName == "" {
		s.ServiceName = defaults.ServiceName
	}
	if s.APIURL == "" {
		s.APIURL = defaults.APIURL
	}
	if s.ModelDir == "" {
		s.ModelDir = defaults.ModelDir
	}
	if s.RefreshIntervalMS <= 0 {
		s.RefreshIntervalMS = defaults.RefreshIntervalMS
	}
	if s.RequestTimeoutMS <= 0 {
		s.RequestTimeoutMS = defaults.RequestTimeoutMS
	}
	if s.LogLevel == "" {
		s.LogLevel = defaults.LogLevel
	}
}

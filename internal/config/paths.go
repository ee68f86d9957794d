// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// GlobalDirName is the name of the global ollama-tray directory.
const GlobalDirName = ".ollama-tray"

// File names
const (
	SettingsFileName = "settings.yaml"
	DaemonFileName   = "daemon.yaml"
	LogFileName      = "ollama-tray.log"
)

// GlobalDir returns the path to the global ollama-tray directory (~/.ollama-tray/).
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// GlobalDaemonFile returns the path to the daemon.yaml file.
func GlobalDaemonFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DaemonFileName), nil
}

// EnsureGlobalDir creates the global ollama-tray directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ExpandHome expands a leading "~" in a path to the user's home directory.
// Paths without the prefix are returned unchanged, as is the input when the
// home directory cannot be determined.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

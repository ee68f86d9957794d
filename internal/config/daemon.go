package config

import (
	"errors"
	"io/fs"
	"os"
	"syscall"

	"github.com/seanGSISG/ollama-tray/internal/models"
)

// LoadDaemonInfo loads the tray process info from ~/.ollama-tray/daemon.yaml.
// Returns nil if the file doesn't exist.
func LoadDaemonInfo() (*models.DaemonInfo, error) {
	path, err := GlobalDaemonFile()
	if err != nil {
		return nil, err
	}

	var info models.DaemonInfo
	if err := readYAML(path, &info); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

// SaveDaemonInfo saves the tray process info to ~/.ollama-tray/daemon.yaml.
func SaveDaemonInfo(info *models.DaemonInfo) error {
	path, err := GlobalDaemonFile()
	if err != nil {
		return err
	}
	return writeYAML(path, info)
}

// RemoveDaemonInfo removes the daemon.yaml file.
func RemoveDaemonInfo() error {
	path, err := GlobalDaemonFile()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// IsTrayRunning checks if another tray instance is still running.
// Returns true if daemon.yaml exists and the PID is alive.
func IsTrayRunning() (bool, *models.DaemonInfo, error) {
	info, err := LoadDaemonInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	// Send signal 0 to check if the process exists. On Unix FindProcess
	// always succeeds, so the signal result is the real check.
	process, err := os.FindProcess(info.PID)
	if err != nil {
		return false, info, nil
	}
	if err := process.Signal(syscall.Signal(0)); err != nil {
		// Process doesn't exist, clean up stale file
		_ = RemoveDaemonInfo()
		return false, info, nil
	}

	return true, info, nil
}

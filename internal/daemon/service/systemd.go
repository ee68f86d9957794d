// Package service controls the Ollama systemd user service.
package service

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/seanGSISG/ollama-tray/internal/models"
)

// runner executes a command and returns its combined output. Tests swap it
// for a fake; production code uses exec.Command.
type runner func(name string, args ...string) ([]byte, error)

func execRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// Manager queries and controls a named systemd user service.
type Manager struct {
	serviceName string
	run         runner
}

// NewManager creates a manager for the given service name (e.g. "ollama.service").
func NewManager(serviceName string) *Manager {
	return &Manager{serviceName: serviceName, run: execRunner}
}

// Status reports whether the service is active. Process-manager errors
// (non-zero exit, missing systemctl) mean stopped, never a failure: an
// inactive service is an expected, frequent condition.
func (m *Manager) Status() models.ServiceStatus {
	out, err := m.run("systemctl", "--user", "is-active", m.serviceName)
	if err != nil {
		return models.ServiceStopped
	}
	if strings.TrimSpace(string(out)) == "active" {
		return models.ServiceRunning
	}
	return models.ServiceStopped
}

// Start starts the service. Best-effort fire-and-forget control; the next
// refresh picks up the resulting state.
func (m *Manager) Start() error {
	if out, err := m.run("systemctl", "--user", "start", m.serviceName); err != nil {
		return fmt.Errorf("failed to start %s: %w (%s)", m.serviceName, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Stop stops the service.
func (m *Manager) Stop() error {
	if out, err := m.run("systemctl", "--user", "stop", m.serviceName); err != nil {
		return fmt.Errorf("failed to stop %s: %w (%s)", m.serviceName, err, strings.TrimSpace(string(out)))
	}
	return nil
}

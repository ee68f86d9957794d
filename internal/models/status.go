// Package models defines the data types shared between the daemon, tray, CLI and TUI.
package models

// ServiceStatus is the liveness state of the managed Ollama service.
type ServiceStatus string

// Service states as reported by the service manager.
const (
	ServiceRunning ServiceStatus = "running"
	ServiceStopped ServiceStatus = "stopped"
	ServiceUnknown ServiceStatus = "unknown"
)

// ModelSummary describes one model from the Ollama inventory.
// The list is rebuilt wholesale on every refresh; nothing is diffed.
type ModelSummary struct {
	Name      string
	SizeBytes int64
	Tags      []string
}

// StatusSnapshot is the immutable result of a single refresh cycle.
// Each snapshot fully supersedes the previous one.
type StatusSnapshot struct {
	Service           ServiceStatus
	Models            []ModelSummary
	ModelsText        string
	ModelCountChanged bool
	GPUText           string
	ContextText       string
}

// OperationResult reports the terminal outcome of a pull or delete operation.
type OperationResult struct {
	Succeeded    bool
	FinalMessage string
}

// Package ops runs long-lived model operations off the refresh cadence.
//
// Pull streams progress lines from the external pull tool; delete goes
// through the daemon API with a bounded timeout. Both report a terminal
// OperationResult exactly once, and both are meant to run inside Spawn so
// they never stall the poller or the presentation layer.
package ops

import (
	"bufio"
	"context"
	"io/fs"
	"log"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/seanGSISG/ollama-tray/internal/config"
	"github.com/seanGSISG/ollama-tray/internal/daemon/ollama"
	"github.com/seanGSISG/ollama-tray/internal/models"
)

// Handle is a one-shot completion handle for a background operation.
type Handle struct {
	ID     string
	done   chan struct{}
	result models.OperationResult
}

// Done returns a channel closed when the operation reaches a terminal state.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Result returns the operation result. Valid only after Done is closed.
func (h *Handle) Result() models.OperationResult { return h.result }

// Wait blocks until the operation completes and returns its result.
func (h *Handle) Wait() models.OperationResult {
	<-h.done
	return h.result
}

// Runner executes model operations against the daemon and the pull tool.
type Runner struct {
	client   *ollama.Client
	modelDir string
	timeout  time.Duration

	// pullCommand is the argv prefix for pulls; the model name is appended.
	// Tests point it at a fake.
	pullCommand []string
}

// NewRunner creates a runner. modelDir may contain a leading "~".
func NewRunner(client *ollama.Client, modelDir string, timeout time.Duration) *Runner {
	return &Runner{
		client:      client,
		modelDir:    config.ExpandHome(modelDir),
		timeout:     timeout,
		pullCommand: []string{"ollama", "pull"},
	}
}

// Spawn runs fn on its own goroutine and returns a handle that reports the
// terminal result exactly once. Pull and remove share this path so they stay
// symmetric.
func Spawn(fn func() models.OperationResult) *Handle {
	h := &Handle{
		ID:   uuid.NewString(),
		done: make(chan struct{}),
	}
	go func() {
		defer close(h.done)
		h.result = fn()
	}()
	return h
}

// PullModel runs the external pull command for the named model, invoking
// onLine once per emitted output line in order. Succeeds iff the process
// exits 0. No wall-clock bound: output streams instead.
//
// No two pulls for the same model should run concurrently; the dialog flow
// issues one operation at a time.
func (r *Runner) PullModel(name string, onLine func(string)) models.OperationResult {
	args := append(append([]string{}, r.pullCommand[1:]...), name)
	cmd := exec.Command(r.pullCommand[0], args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return models.OperationResult{FinalMessage: "failed to start pull: " + err.Error()}
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		// Wait never runs on this path, so release the pipe here.
		stdout.Close()
		return models.OperationResult{FinalMessage: "failed to start pull: " + err.Error()}
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if onLine != nil {
			onLine(line)
		}
		log.Printf("Pull %s: %s", name, line)
	}

	if err := cmd.Wait(); err != nil {
		log.Printf("Pull %s failed: %v", name, err)
		return models.OperationResult{FinalMessage: "pull of " + name + " failed: " + err.Error()}
	}
	return models.OperationResult{Succeeded: true, FinalMessage: "pulled " + name}
}

// RemoveModel deletes the named model through the daemon API.
// Succeeds iff the daemon answers with a success status. Not retried.
func (r *Runner) RemoveModel(name string) models.OperationResult {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.client.DeleteModel(ctx, name); err != nil {
		log.Printf("Remove %s failed: %v", name, err)
		return models.OperationResult{FinalMessage: "failed to remove " + name + ": " + err.Error()}
	}
	return models.OperationResult{Succeeded: true, FinalMessage: "removed " + name}
}

// ListModels returns the daemon inventory, or an empty list on any error.
func (r *Runner) ListModels() []models.ModelSummary {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	list, err := r.client.ListModels(ctx)
	if err != nil {
		log.Printf("List models failed: %v", err)
		return []models.ModelSummary{}
	}
	return list
}

// DiskUsageMB walks the model directory and sums file sizes in megabytes.
// A missing directory yields 0; per-file stat errors are skipped.
func (r *Runner) DiskUsageMB() float64 {
	var total int64
	err := filepath.WalkDir(r.modelDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d == nil {
				// Root missing: report zero usage.
				return filepath.SkipAll
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0
	}
	return float64(total) / (1024 * 1024)
}

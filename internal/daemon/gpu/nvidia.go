// Package gpu reads GPU memory usage from the nvidia-smi tool.
package gpu

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Placeholder strings for hosts where telemetry is unavailable.
const (
	NoGPUText = "NVIDIA GPU not found"
	ErrorText = "Error reading GPU"
)

type runner func(name string, args ...string) ([]byte, error)

func execRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// Prober queries GPU memory usage.
type Prober struct {
	run runner
}

// NewProber creates a prober backed by nvidia-smi.
func NewProber() *Prober {
	return &Prober{run: execRunner}
}

// MemoryText returns "used MiB / total MiB" for the first GPU, or a
// placeholder string. Absence of the tool is expected on non-GPU hosts and
// never surfaces as an error.
func (p *Prober) MemoryText() string {
	out, err := p.run("nvidia-smi", "--query-gpu=memory.used,memory.total", "--format=csv,noheader,nounits")
	if err != nil {
		return NoGPUText
	}

	used, total, err := parseCSVLine(string(out))
	if err != nil {
		return ErrorText
	}
	return fmt.Sprintf("%d MiB / %d MiB", used, total)
}

// parseCSVLine parses a "used, total" MiB line as emitted by nvidia-smi.
func parseCSVLine(line string) (used, total int, err error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("unexpected nvidia-smi output: %q", line)
	}
	used, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("bad used value: %w", err)
	}
	total, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("bad total value: %w", err)
	}
	return used, total, nil
}

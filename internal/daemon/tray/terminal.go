package tray

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// terminalCandidates are tried in order; the first one that starts wins.
var terminalCandidates = [][]string{
	{"x-terminal-emulator", "-e"},
	{"gnome-terminal", "--"},
	{"konsole", "-e"},
	{"xfce4-terminal", "-x"},
	{"xterm", "-e"},
}

// cliPath locates the ollama-tray CLI binary: next to this executable first,
// then in PATH.
func cliPath() string {
	if self, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(self), "ollama-tray")
		if _, err := os.Stat(sibling); err == nil {
			return sibling
		}
	}
	return "ollama-tray"
}

// openModelManager launches the model manager TUI in a terminal window.
func openModelManager() error {
	cli := cliPath()

	for _, candidate := range terminalCandidates {
		if _, err := exec.LookPath(candidate[0]); err != nil {
			continue
		}
		args := append(append([]string{}, candidate[1:]...), cli, "models", "manage")
		if err := exec.Command(candidate[0], args...).Start(); err == nil {
			return nil
		}
	}
	return fmt.Errorf("no terminal emulator found")
}

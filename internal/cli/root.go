// Package cli implements the ollama-tray CLI commands.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/seanGSISG/ollama-tray/internal/config"
	"github.com/seanGSISG/ollama-tray/internal/daemon/ollama"
	"github.com/seanGSISG/ollama-tray/internal/daemon/ops"
	"github.com/seanGSISG/ollama-tray/internal/models"
)

var rootCmd = &cobra.Command{
	Use:   "ollama-tray",
	Short: "Monitor and control a local Ollama service",
	Long: `ollama-tray monitors a local Ollama daemon and its systemd user service.
It shows service status, loaded models, GPU memory and context usage, and
manages models (pull, delete) from the command line or a small TUI.`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(serviceCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadEnv builds the collaborators every command needs from the settings file.
func loadEnv() (*models.Settings, *ollama.Client, *ops.Runner, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, nil, nil, err
	}
	timeout := time.Duration(settings.RequestTimeoutMS) * time.Millisecond
	client := ollama.New(settings.APIURL, timeout)
	runner := ops.NewRunner(client, settings.ModelDir, timeout)
	return settings, client, runner, nil
}

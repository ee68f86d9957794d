package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/seanGSISG/ollama-tray/internal/daemon/gpu"
	"github.com/seanGSISG/ollama-tray/internal/daemon/poller"
	"github.com/seanGSISG/ollama-tray/internal/daemon/service"
	"github.com/seanGSISG/ollama-tray/internal/models"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show Ollama service status, models, GPU and context usage",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	settings, client, _, err := loadEnv()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	timeout := time.Duration(settings.RequestTimeoutMS) * time.Millisecond
	p := poller.New(service.NewManager(settings.ServiceName), client, gpu.NewProber(), timeout, settings.DebugEnabled())
	snap := p.Refresh(context.Background())

	fmt.Printf("%s %s\n", styleBrand.Render("Ollama"), styleLabel.Render(client.BaseURL()))
	fmt.Printf("%s %s\n", styleLabel.Render("Service:"), renderService(snap.Service))
	fmt.Printf("%s %s\n", styleLabel.Render("Models: "), styleValue.Render(snap.ModelsText))
	fmt.Printf("%s %s\n", styleLabel.Render("GPU:    "), styleValue.Render(snap.GPUText))
	fmt.Printf("%s %s\n", styleLabel.Render("Context:"), styleValue.Render(snap.ContextText))

	for _, m := range snap.Models {
		fmt.Printf("  %s %s\n",
			styleValue.Render(fullName(m)),
			styleLabel.Render(humanize.Bytes(uint64(m.SizeBytes))))
	}
	return nil
}

func renderService(s models.ServiceStatus) string {
	switch s {
	case models.ServiceRunning:
		return styleRunning.Render("Running")
	case models.ServiceStopped:
		return styleStopped.Render("Stopped")
	default:
		return styleLabel.Render("Unknown")
	}
}

// fullName re-joins a model name with its first tag for display.
func fullName(m models.ModelSummary) string {
	if len(m.Tags) > 0 {
		return m.Name + ":" + m.Tags[0]
	}
	return m.Name
}

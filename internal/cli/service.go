package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seanGSISG/ollama-tray/internal/daemon/service"
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Control the Ollama systemd user service",
}

var serviceStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Ollama service",
	RunE:  runServiceStart,
}

var serviceStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the Ollama service",
	RunE:  runServiceStop,
}

func init() {
	serviceCmd.AddCommand(serviceStartCmd)
	serviceCmd.AddCommand(serviceStopCmd)
}

func runServiceStart(cmd *cobra.Command, args []string) error {
	settings, _, _, err := loadEnv()
	if err != nil {
		return err
	}
	if err := service.NewManager(settings.ServiceName).Start(); err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render("Started " + settings.ServiceName))
	return nil
}

func runServiceStop(cmd *cobra.Command, args []string) error {
	settings, _, _, err := loadEnv()
	if err != nil {
		return err
	}
	if err := service.NewManager(settings.ServiceName).Stop(); err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render("Stopped " + settings.ServiceName))
	return nil
}

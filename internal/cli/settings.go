package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/seanGSISG/ollama-tray/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or initialize settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE:  runSettingsShow,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with defaults",
	RunE:  runSettingsInit,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsInitCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	path, err := config.GlobalSettingsFile()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	fmt.Println(styleLabel.Render("# " + path))
	fmt.Print(string(data))
	return nil
}

func runSettingsInit(cmd *cobra.Command, args []string) error {
	path, err := config.GlobalSettingsFile()
	if err != nil {
		return err
	}
	if config.SettingsFileExists() {
		return fmt.Errorf("settings file already exists: %s", path)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if err := config.SaveSettings(settings); err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render("Wrote " + path))
	return nil
}

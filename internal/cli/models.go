package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/seanGSISG/ollama-tray/internal/daemon/ops"
	"github.com/seanGSISG/ollama-tray/internal/models"
	"github.com/seanGSISG/ollama-tray/internal/tui"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List and manage Ollama models",
}

var modelsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List models held by the daemon",
	RunE:    runModelsList,
}

var modelsPullCmd = &cobra.Command{
	Use:   "pull <model>",
	Short: "Pull a model, streaming progress",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsPull,
}

var modelsRemoveCmd = &cobra.Command{
	Use:     "rm <model>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a model from the daemon",
	Args:    cobra.ExactArgs(1),
	RunE:    runModelsRemove,
}

var modelsShowCmd = &cobra.Command{
	Use:   "show <model>",
	Short: "Show model details",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsShow,
}

var modelsDiskCmd = &cobra.Command{
	Use:   "du",
	Short: "Show disk usage of the model directory",
	RunE:  runModelsDisk,
}

var modelsManageCmd = &cobra.Command{
	Use:   "manage",
	Short: "Open the interactive model manager",
	RunE:  runModelsManage,
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsPullCmd)
	modelsCmd.AddCommand(modelsRemoveCmd)
	modelsCmd.AddCommand(modelsShowCmd)
	modelsCmd.AddCommand(modelsDiskCmd)
	modelsCmd.AddCommand(modelsManageCmd)
}

func runModelsList(cmd *cobra.Command, args []string) error {
	_, _, runner, err := loadEnv()
	if err != nil {
		return err
	}

	list := runner.ListModels()
	if len(list) == 0 {
		fmt.Println(styleLabel.Render("No models (or Ollama not responding)"))
		return nil
	}

	for _, m := range list {
		fmt.Printf("%s  %s\n",
			styleValue.Render(fullName(m)),
			styleLabel.Render(humanize.Bytes(uint64(m.SizeBytes))))
	}
	fmt.Printf("\n%s %.1f MB\n", styleLabel.Render("Disk usage:"), runner.DiskUsageMB())
	return nil
}

func runModelsPull(cmd *cobra.Command, args []string) error {
	_, _, runner, err := loadEnv()
	if err != nil {
		return err
	}

	name := args[0]
	fmt.Printf("Pulling %s...\n", styleValue.Render(name))

	handle := ops.Spawn(func() models.OperationResult {
		return runner.PullModel(name, func(line string) {
			fmt.Println(styleLabel.Render(line))
		})
	})

	result := handle.Wait()
	if !result.Succeeded {
		fmt.Println(styleError.Render(result.FinalMessage))
		return fmt.Errorf("pull failed")
	}
	fmt.Println(styleSuccess.Render(result.FinalMessage))
	return nil
}

func runModelsRemove(cmd *cobra.Command, args []string) error {
	_, _, runner, err := loadEnv()
	if err != nil {
		return err
	}

	result := runner.RemoveModel(args[0])
	if !result.Succeeded {
		fmt.Println(styleError.Render(result.FinalMessage))
		return fmt.Errorf("remove failed")
	}
	fmt.Println(styleSuccess.Render(result.FinalMessage))
	return nil
}

func runModelsShow(cmd *cobra.Command, args []string) error {
	settings, client, _, err := loadEnv()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(settings.RequestTimeoutMS)*time.Millisecond)
	defer cancel()

	detail, err := client.ShowModel(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch model details: %w", err)
	}

	keys := make([]string, 0, len(detail))
	for k := range detail {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s %v\n", styleLabel.Render(k+":"), detail[k])
	}
	return nil
}

func runModelsDisk(cmd *cobra.Command, args []string) error {
	settings, _, runner, err := loadEnv()
	if err != nil {
		return err
	}
	fmt.Printf("%s %.1f MB (%s)\n", styleLabel.Render("Model disk usage:"), runner.DiskUsageMB(), settings.ModelDir)
	return nil
}

func runModelsManage(cmd *cobra.Command, args []string) error {
	_, _, runner, err := loadEnv()
	if err != nil {
		return err
	}
	return tui.Run(runner)
}

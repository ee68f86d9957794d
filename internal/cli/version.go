package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/seanGSISG/ollama-tray/internal/buildinfo"
	"github.com/seanGSISG/ollama-tray/internal/updater"
)

var versionCheck bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%s %s\n", styleBrand.Render("ollama-tray"), buildinfo.Version)
		fmt.Printf("  Commit: %s\n", buildinfo.CommitHash)
		fmt.Printf("  Built: %s\n", buildinfo.BuildDate)
		fmt.Printf("  OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Printf("  Go: %s\n", runtime.Version())

		if !versionCheck {
			return nil
		}

		result, err := updater.CheckForUpdate()
		if err != nil {
			return fmt.Errorf("update check failed: %w", err)
		}
		if result.Available {
			fmt.Printf("\nUpdate available: %s → %s\n  %s\n",
				result.CurrentVersion, result.LatestVersion, result.ReleaseURL)
		} else {
			fmt.Println(styleLabel.Render("\nNo update available"))
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check GitHub Releases for a newer version")
}

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wonny/topmonde/internal/staging"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show per-stage file counts",
	Long: `Lists every stage directory under the data root with the number of
files it currently holds.

Example:
  go run ./cmd/topmonde status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return fmt.Errorf("❌ Failed to load config: %w", err)
	}

	stage := newStage(cfg, log)

	fmt.Printf("=== Top Monde Data Root: %s ===\n\n", cfg.DataDir)
	fmt.Println("📂 Stage Directories")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	stages := []string{
		staging.WaitingRoom,
		staging.ReadyToUse,
		staging.TickerRoom,
		staging.UsedInputFiles,
		staging.History,
		staging.Lists,
	}

	for _, name := range stages {
		files, err := filepath.Glob(filepath.Join(stage.Dir(name), "*"))
		if err != nil {
			return fmt.Errorf("❌ Failed to scan %s: %w", name, err)
		}
		fmt.Printf("%-18s %6d files\n", name+":", len(files))
	}

	return nil
}

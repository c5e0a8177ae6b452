package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// cleanupCmd represents the cleanup command
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Relocate consumed files between stage directories",
	Long: `Moves files along the stage lifecycle:

  waiting_room/*.csv            → used_input_files
  ticker_room/*.csv             → ready_to_use
  ready_to_use non-enhanced CSV → used_input_files

Example:
  go run ./cmd/topmonde cleanup`,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return fmt.Errorf("❌ Failed to load config: %w", err)
	}

	stage := newStage(cfg, log)
	if err := stage.EnsureLayout(); err != nil {
		return fmt.Errorf("❌ Failed to prepare data directories: %w", err)
	}

	moved, err := stage.Cleanup()
	if err != nil {
		return fmt.Errorf("❌ Cleanup failed: %w", err)
	}

	fmt.Printf("✅ Moved %d files\n", moved)
	return nil
}

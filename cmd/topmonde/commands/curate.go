package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// curateCmd represents the curate command
var curateCmd = &cobra.Command{
	Use:   "curate",
	Short: "Build the ticker watchlist files",
	Long: `Curates the three watchlist files from the most recent enhanced
snapshot in ready_to_use:

  top_monde_<date>.txt       tiered Top 30 big caps + Top 50 global
  top_monde_2_7_<date>.txt   every ticker scoring at or above the cutoff
  top_monde_worst_<date>.txt lowest positive scores

Any failure aborts the run before a single list file is written.

Example:
  go run ./cmd/topmonde curate`,
	RunE: runCurate,
}

func init() {
	rootCmd.AddCommand(curateCmd)
}

func runCurate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return fmt.Errorf("❌ Failed to load config: %w", err)
	}

	stage := newStage(cfg, log)
	if err := stage.EnsureLayout(); err != nil {
		return fmt.Errorf("❌ Failed to prepare data directories: %w", err)
	}

	result, err := newCurationRunner(cfg, stage, log).Run()
	if err != nil {
		return fmt.Errorf("❌ Curation failed: %w", err)
	}

	fmt.Printf("✅ Curated from %s\n", filepath.Base(result.Source))
	fmt.Printf("  %-12s %4d tokens  %s\n", "unified:", len(result.Lists.Unified), filepath.Base(result.UnifiedPath))
	fmt.Printf("  %-12s %4d tokens  %s\n", "threshold:", len(result.Lists.Threshold), filepath.Base(result.ThresholdPath))
	fmt.Printf("  %-12s %4d tokens  %s\n", "worst:", len(result.Lists.Worst), filepath.Base(result.WorstPath))
	return nil
}

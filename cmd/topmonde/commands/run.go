package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wonny/topmonde/internal/contracts"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline once",
	Long: `Runs ranking, curation and cleanup in order, the same sequence
the scheduler triggers daily. Cleanup comes last so it archives only the
inputs ranking already consumed.

A day without fresh snapshots is fine: curation still regenerates the
lists from the latest enhanced artifact.

Example:
  go run ./cmd/topmonde run`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return fmt.Errorf("❌ Failed to load config: %w", err)
	}

	stage := newStage(cfg, log)
	if err := stage.EnsureLayout(); err != nil {
		return fmt.Errorf("❌ Failed to prepare data directories: %w", err)
	}

	fmt.Println("=== Top Monde Pipeline ===")

	processed, found, err := newProcessor(cfg, stage, log).Run(context.Background())
	switch {
	case errors.Is(err, contracts.ErrNoSnapshots):
		fmt.Println("📭 Rank: no snapshot files waiting")
	case err != nil:
		return fmt.Errorf("❌ Ranking failed: %w", err)
	default:
		fmt.Printf("📊 Rank: processed %d/%d snapshot files\n", processed, found)
	}

	result, err := newCurationRunner(cfg, stage, log).Run()
	if err != nil {
		return fmt.Errorf("❌ Curation failed: %w", err)
	}
	fmt.Printf("📋 Curate: %d unified, %d threshold, %d worst → %s\n",
		len(result.Lists.Unified), len(result.Lists.Threshold), len(result.Lists.Worst),
		filepath.Dir(result.UnifiedPath))

	moved, err := stage.Cleanup()
	if err != nil {
		return fmt.Errorf("❌ Cleanup failed: %w", err)
	}
	fmt.Printf("🧹 Cleanup: moved %d files\n", moved)

	fmt.Println("\n✅ Pipeline complete!")
	return nil
}

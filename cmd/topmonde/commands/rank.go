package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/topmonde/internal/contracts"
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score waiting snapshots into enhanced CSVs",
	Long: `Scores every TOP MONDE*.csv in the waiting room and writes the
enhanced result (derived score columns, sorted by score) next to it in
ready_to_use as <name>_enhanced.csv.

Files whose enhanced artifact already exists are skipped but still count
as processed. A file that fails validation is logged and skipped; the
batch continues.

Example:
  go run ./cmd/topmonde rank`,
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return fmt.Errorf("❌ Failed to load config: %w", err)
	}

	stage := newStage(cfg, log)
	if err := stage.EnsureLayout(); err != nil {
		return fmt.Errorf("❌ Failed to prepare data directories: %w", err)
	}

	processed, found, err := newProcessor(cfg, stage, log).Run(context.Background())
	if err != nil {
		if errors.Is(err, contracts.ErrNoSnapshots) {
			fmt.Println("📭 No snapshot files waiting")
			return nil
		}
		return fmt.Errorf("❌ Ranking failed: %w", err)
	}

	fmt.Printf("✅ Processed %d/%d snapshot files\n", processed, found)
	return nil
}

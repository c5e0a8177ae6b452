package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Monthly price history tools",
	Long: `Fetches monthly price history and derives rolling 12-month window
performance rankings from it.

Subcommands:
  refresh - fetch bars and rebuild the performers table
  sp500   - print the current S&P 500 membership

Example:
  go run ./cmd/topmonde history refresh
  go run ./cmd/topmonde history refresh --sp500`,
}

var historyRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch monthly bars and rebuild the performers table",
	Long: `Fetches the trailing months of monthly bars for every ticker of the
latest snapshot in history/ (or the S&P 500 with --sp500), caches them,
and writes the per-window top performers CSV.

The cache is reused when it was already written today.`,
	RunE: runHistoryRefresh,
}

var historySP500Cmd = &cobra.Command{
	Use:   "sp500",
	Short: "Print the current S&P 500 membership",
	RunE:  runHistorySP500,
}

var historyUseSP500 bool

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyRefreshCmd)
	historyCmd.AddCommand(historySP500Cmd)

	historyRefreshCmd.Flags().BoolVar(&historyUseSP500, "sp500", false, "fetch the S&P 500 universe instead of snapshot tickers")
}

func runHistoryRefresh(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return fmt.Errorf("❌ Failed to load config: %w", err)
	}

	stage := newStage(cfg, log)
	if err := stage.EnsureLayout(); err != nil {
		return fmt.Errorf("❌ Failed to prepare data directories: %w", err)
	}

	service := newHistoryService(cfg, stage, log)
	if historyUseSP500 {
		service = service.WithSP500Universe()
	}

	summary, err := service.Refresh(context.Background())
	if err != nil {
		return fmt.Errorf("❌ History refresh failed: %w", err)
	}

	if summary.CacheUsed {
		fmt.Println("♻️  Reused today's cached monthly data")
	}
	fmt.Printf("✅ %d tickers, %d bars, %d rolling windows\n", summary.Tickers, summary.Bars, summary.Windows)
	fmt.Printf("📄 Performers table: %s\n", filepath.Base(summary.PerformersPath))
	return nil
}

func runHistorySP500(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return fmt.Errorf("❌ Failed to load config: %w", err)
	}

	symbols, err := newHistoryClient(cfg, log).SP500Symbols(context.Background())
	if err != nil {
		return fmt.Errorf("❌ Failed to fetch S&P 500 membership: %w", err)
	}

	for _, symbol := range symbols {
		fmt.Println(symbol)
	}
	fmt.Printf("\n✅ %d constituents\n", len(symbols))
	return nil
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/topmonde/internal/curation"
	"github.com/wonny/topmonde/internal/history"
	"github.com/wonny/topmonde/internal/ranking"
	"github.com/wonny/topmonde/internal/staging"
	"github.com/wonny/topmonde/pkg/config"
	"github.com/wonny/topmonde/pkg/httputil"
	"github.com/wonny/topmonde/pkg/logger"
)

var (
	// Global flags
	dataDir string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "topmonde",
	Short: "Top Monde - equity ticker ranking and list curation pipeline",
	Long: `Top Monde pipeline CLI

Scores daily equity screener snapshots and curates watchlist files
from the enhanced results.

Usage:
  go run ./cmd/topmonde [command]

Examples:
  go run ./cmd/topmonde run
  go run ./cmd/topmonde rank
  go run ./cmd/topmonde curate
  go run ./cmd/topmonde history refresh`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data root directory (default from DATA_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setup loads configuration, applies global flag overrides and builds the
// logger. Every subcommand goes through it.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, logger.New(cfg), nil
}

func newStage(cfg *config.Config, log *logger.Logger) *staging.Stage {
	return staging.New(cfg.DataDir, log)
}

func newProcessor(cfg *config.Config, stage *staging.Stage, log *logger.Logger) *ranking.Processor {
	return ranking.NewProcessor(
		stage.Dir(staging.WaitingRoom),
		stage.Dir(staging.ReadyToUse),
		cfg.Ranking.Workers,
		log,
	)
}

func newCurationRunner(cfg *config.Config, stage *staging.Stage, log *logger.Logger) *curation.Runner {
	return curation.NewRunner(stage, stage.Dir(staging.Lists), curationConfig(cfg), log)
}

func curationConfig(cfg *config.Config) curation.Config {
	return curation.Config{
		MinMarketCap:   cfg.Curation.MinMarketCap,
		TierSize:       cfg.Curation.TierSize,
		GlobalSize:     cfg.Curation.GlobalSize,
		ScoreThreshold: cfg.Curation.ScoreThreshold,
		WorstSize:      cfg.Curation.WorstSize,
	}
}

func newHistoryClient(cfg *config.Config, log *logger.Logger) *history.Client {
	httpClient := httputil.New(log, cfg.History.RequestTimeout).
		WithRateLimit(cfg.History.RequestsPerSec)
	return history.NewClient(httpClient, cfg.History.BaseURL, log)
}

func newHistoryService(cfg *config.Config, stage *staging.Stage, log *logger.Logger) *history.Service {
	return history.NewService(newHistoryClient(cfg, log), stage, cfg.History, log)
}

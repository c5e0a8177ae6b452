package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the pipeline.
type Config struct {
	Env string // development, staging, production

	// Data layout
	DataDir string

	// Ranking
	Ranking RankingConfig

	// Curation
	Curation CurationConfig

	// Historical data fetcher
	History HistoryConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// RankingConfig controls the batch scoring stage.
type RankingConfig struct {
	// Workers is the number of snapshot files enhanced concurrently.
	Workers int
}

// CurationConfig controls ticker list selection.
type CurationConfig struct {
	MinMarketCap   float64 // big-cap filter for the Top 30 tiers
	TierSize       int     // tokens per Top 30 tier
	GlobalSize     int     // size of the unfiltered Top N section
	ScoreThreshold float64 // cutoff for the score list
	WorstSize      int     // size of the worst performers list
}

// HistoryConfig controls the monthly price history fetcher.
type HistoryConfig struct {
	BaseURL        string
	Months         int
	BatchSize      int
	RequestsPerSec float64
	RequestTimeout time.Duration
}

// Load reads configuration from environment variables.
// This function is the only place os.Getenv() is called.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env:     getEnv("ENV", "development"),
		DataDir: getEnv("DATA_DIR", "data"),

		Ranking: RankingConfig{
			Workers: getEnvAsInt("RANKING_WORKERS", 4),
		},

		Curation: CurationConfig{
			MinMarketCap:   getEnvAsFloat("CURATION_MIN_MARKET_CAP", 10_000_000_000),
			TierSize:       getEnvAsInt("CURATION_TIER_SIZE", 15),
			GlobalSize:     getEnvAsInt("CURATION_GLOBAL_SIZE", 50),
			ScoreThreshold: getEnvAsFloat("CURATION_SCORE_THRESHOLD", 2.7),
			WorstSize:      getEnvAsInt("CURATION_WORST_SIZE", 100),
		},

		History: HistoryConfig{
			BaseURL:        getEnv("HISTORY_BASE_URL", "https://query1.finance.yahoo.com"),
			Months:         getEnvAsInt("HISTORY_MONTHS", 13),
			BatchSize:      getEnvAsInt("HISTORY_BATCH_SIZE", 100),
			RequestsPerSec: getEnvAsFloat("HISTORY_REQUESTS_PER_SEC", 5),
			RequestTimeout: getEnvAsDuration("HISTORY_REQUEST_TIMEOUT", "30s"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Ranking.Workers < 1 {
		return fmt.Errorf("RANKING_WORKERS must be at least 1")
	}

	if c.Curation.TierSize < 1 || c.Curation.GlobalSize < 1 || c.Curation.WorstSize < 1 {
		return fmt.Errorf("curation list sizes must be at least 1")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

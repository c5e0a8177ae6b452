package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.DataDir != "data" {
		t.Errorf("Expected DataDir to be data, got %s", cfg.DataDir)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Curation.MinMarketCap != 10_000_000_000 {
		t.Errorf("Expected MinMarketCap to be 10e9, got %f", cfg.Curation.MinMarketCap)
	}

	if cfg.Curation.ScoreThreshold != 2.7 {
		t.Errorf("Expected ScoreThreshold to be 2.7, got %f", cfg.Curation.ScoreThreshold)
	}

	if cfg.History.Months != 13 {
		t.Errorf("Expected History.Months to be 13, got %d", cfg.History.Months)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("DATA_DIR", "/var/lib/topmonde")
	os.Setenv("ENV", "production")
	os.Setenv("RANKING_WORKERS", "8")
	os.Setenv("CURATION_SCORE_THRESHOLD", "3.1")
	os.Setenv("LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("DATA_DIR")
		os.Unsetenv("ENV")
		os.Unsetenv("RANKING_WORKERS")
		os.Unsetenv("CURATION_SCORE_THRESHOLD")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DataDir != "/var/lib/topmonde" {
		t.Errorf("Expected DataDir to be /var/lib/topmonde, got %s", cfg.DataDir)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.Ranking.Workers != 8 {
		t.Errorf("Expected Workers to be 8, got %d", cfg.Ranking.Workers)
	}

	if cfg.Curation.ScoreThreshold != 3.1 {
		t.Errorf("Expected ScoreThreshold to be 3.1, got %f", cfg.Curation.ScoreThreshold)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be debug, got %s", cfg.LogLevel)
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	os.Setenv("ENV", "invalid")
	defer os.Unsetenv("ENV")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when ENV is invalid, got nil")
	}
}

func TestValidateInvalidWorkers(t *testing.T) {
	os.Setenv("RANKING_WORKERS", "0")
	defer os.Unsetenv("RANKING_WORKERS")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when RANKING_WORKERS is zero, got nil")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "2h")
	defer os.Unsetenv("TEST_DURATION")

	duration := getEnvAsDuration("TEST_DURATION", "1h")
	expected := 2 * time.Hour

	if duration != expected {
		t.Errorf("Expected duration to be %v, got %v", expected, duration)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	os.Setenv("TEST_INT", "100")
	defer os.Unsetenv("TEST_INT")

	value := getEnvAsInt("TEST_INT", 50)
	if value != 100 {
		t.Errorf("Expected value to be 100, got %d", value)
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	os.Setenv("TEST_FLOAT", "2.5")
	defer os.Unsetenv("TEST_FLOAT")

	value := getEnvAsFloat("TEST_FLOAT", 1.0)
	if value != 2.5 {
		t.Errorf("Expected value to be 2.5, got %f", value)
	}
}

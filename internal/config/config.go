package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// LogDir is where finished session logs are written.
	LogDir string

	// SpreadThreshold is the dew-point-spread widening (°C) required to
	// call the trend BETTER.
	SpreadThreshold float64

	// MinSamples is the minimum number of readings before a trend is
	// reported.
	MinSamples int

	// TrendEvalInterval controls the periodic trend evaluation job.
	// Zero disables it.
	TrendEvalInterval time.Duration

	// NowcastWindow is the sliding window of the nowcast engine.
	NowcastWindow time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.LogDir = getenvDefault("LOG_DIR", "logs")

	cfg.SpreadThreshold = getenvFloat("DEW_SPREAD_THRESHOLD", 2.0)
	if cfg.SpreadThreshold <= 0 {
		return nil, fmt.Errorf("DEW_SPREAD_THRESHOLD must be positive")
	}

	cfg.MinSamples = getenvInt("MIN_SAMPLES_FOR_FORECAST", 2)
	if cfg.MinSamples < 2 {
		return nil, fmt.Errorf("MIN_SAMPLES_FOR_FORECAST must be at least 2")
	}

	// Trend evaluation heartbeat: default 15 minutes, "0" disables.
	intervalStr := getenvDefault("TREND_EVAL_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TREND_EVAL_INTERVAL: %w", err)
	}
	cfg.TrendEvalInterval = interval

	windowStr := getenvDefault("NOWCAST_WINDOW", "3h")
	window, err := time.ParseDuration(windowStr)
	if err != nil {
		return nil, fmt.Errorf("invalid NOWCAST_WINDOW: %w", err)
	}
	if window <= 0 {
		return nil, fmt.Errorf("NOWCAST_WINDOW must be positive")
	}
	cfg.NowcastWindow = window

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

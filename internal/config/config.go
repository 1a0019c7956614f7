// Package config holds runtime configuration for eras. Values come from
// built-in defaults overridden by ERAS_* environment variables; there is no
// config file and no secret material (Wikipedia needs no API key).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	Wikipedia WikipediaConfig
	Ingest    IngestConfig
	Scoring   ScoringConfig
	Selection SelectionConfig
	Storage   StorageConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port int
}

type WikipediaConfig struct {
	BaseURL string
	// UserAgent identifies us to the Wikimedia API per their etiquette policy.
	UserAgent string
	// RequestInterval is the minimum delay between requests to the API.
	RequestInterval time.Duration
	SearchLimit     int
}

type IngestConfig struct {
	// UnitsPerPeriod caps how many passages a single run stores per period.
	UnitsPerPeriod int
	// Parallelism bounds how many periods are fetched concurrently.
	Parallelism int
}

type ScoringConfig struct {
	// Policy names the keyword/weight set in use so stored scores can be
	// traced back to the policy that produced them.
	Policy string
	// Threshold is the minimum score a candidate needs to survive
	// (inclusive).
	Threshold float64
	MinWords  int
	MaxWords  int
}

type SelectionConfig struct {
	// WeightFloor keeps every period selectable no matter how often it was
	// skipped.
	WeightFloor float64
	// RecencyWindow is how many recently served unit ids are excluded from
	// re-selection within a session.
	RecencyWindow int
}

type StorageConfig struct {
	DataDir string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4600,
		},
		Wikipedia: WikipediaConfig{
			BaseURL:         "https://en.wikipedia.org/w/api.php",
			UserAgent:       "eras/1.0 (https://github.com/nvoss/eras)",
			RequestInterval: 500 * time.Millisecond,
			SearchLimit:     50,
		},
		Ingest: IngestConfig{
			UnitsPerPeriod: 150,
			Parallelism:    3,
		},
		Scoring: ScoringConfig{
			Policy:    "keyword-v1",
			Threshold: 2.0,
			MinWords:  30,
			MaxWords:  800,
		},
		Selection: SelectionConfig{
			WeightFloor:   0.05,
			RecencyWindow: 5,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultDataDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".eras")
	}
	return ".eras"
}

// Load builds the configuration from defaults and ERAS_* environment
// variables.
func Load() (Config, error) {
	cfg := defaults()
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Scoring.MinWords <= 0 || cfg.Scoring.MaxWords < cfg.Scoring.MinWords {
		return Config{}, fmt.Errorf("invalid word count window [%d, %d]", cfg.Scoring.MinWords, cfg.Scoring.MaxWords)
	}
	if cfg.Selection.WeightFloor <= 0 {
		return Config{}, fmt.Errorf("selection weight floor must be positive, got %v", cfg.Selection.WeightFloor)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("ERAS_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing ERAS_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("ERAS_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("ERAS_WIKIPEDIA_BASE_URL"); v != "" {
		cfg.Wikipedia.BaseURL = v
	}
	if v := os.Getenv("ERAS_REQUEST_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing ERAS_REQUEST_INTERVAL: %w", err)
		}
		cfg.Wikipedia.RequestInterval = d
	}
	if v := os.Getenv("ERAS_UNITS_PER_PERIOD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing ERAS_UNITS_PER_PERIOD: %w", err)
		}
		cfg.Ingest.UnitsPerPeriod = n
	}
	if v := os.Getenv("ERAS_INGEST_PARALLELISM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing ERAS_INGEST_PARALLELISM: %w", err)
		}
		cfg.Ingest.Parallelism = n
	}
	if v := os.Getenv("ERAS_SCORE_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing ERAS_SCORE_THRESHOLD: %w", err)
		}
		cfg.Scoring.Threshold = f
	}
	if v := os.Getenv("ERAS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

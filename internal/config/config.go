// Package config provides unified configuration for the fraud console
// binaries. Values come from an optional YAML file overridden by
// FRAUD_-prefixed environment variables; mains load a local .env first
// via godotenv.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds configuration for the CLI and the gateway server.
type Config struct {
	// Scoring configures the remote fraud-scoring service.
	Scoring ScoringConfig `yaml:"scoring"`

	// Server configures the local HTTP gateway.
	Server ServerConfig `yaml:"server"`

	// Archive configures optional GCS archival of uploads and exports.
	Archive ArchiveConfig `yaml:"archive"`

	// History configures the optional BigQuery prediction-history sink.
	History HistoryConfig `yaml:"history"`
}

// ScoringConfig holds the remote scoring service settings.
type ScoringConfig struct {
	// BaseURL is the root of the scoring API, e.g. http://localhost:8000.
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-request transport timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig holds gateway HTTP server settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// ArchiveConfig holds GCS archival settings. Archival is disabled when
// Bucket is empty.
type ArchiveConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

// HistoryConfig holds BigQuery history sink settings. The sink is
// disabled when ProjectID is empty.
type HistoryConfig struct {
	ProjectID string `yaml:"project_id"`
	DatasetID string `yaml:"dataset_id"`
	TableID   string `yaml:"table_id"`
}

// Default returns the configuration for local development.
func Default() *Config {
	return &Config{
		Scoring: ScoringConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Archive: ArchiveConfig{
			Prefix: "batches",
		},
		History: HistoryConfig{
			DatasetID: "fraud",
			TableID:   "predictions",
		},
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv applies FRAUD_-prefixed environment overrides.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("FRAUD_SCORING_URL"); v != "" {
		cfg.Scoring.BaseURL = v
	}
	if v := os.Getenv("FRAUD_SCORING_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Scoring.Timeout = d
		}
	}
	if v := os.Getenv("FRAUD_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("FRAUD_ARCHIVE_BUCKET"); v != "" {
		cfg.Archive.Bucket = v
	}
	if v := os.Getenv("FRAUD_ARCHIVE_PREFIX"); v != "" {
		cfg.Archive.Prefix = v
	}
	if v := os.Getenv("FRAUD_HISTORY_PROJECT"); v != "" {
		cfg.History.ProjectID = v
	}
	if v := os.Getenv("FRAUD_HISTORY_DATASET"); v != "" {
		cfg.History.DatasetID = v
	}
	if v := os.Getenv("FRAUD_HISTORY_TABLE"); v != "" {
		cfg.History.TableID = v
	}
}

// Load resolves the effective configuration: defaults, then the YAML file
// at path when non-empty, then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	LoadFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for obvious misconfiguration.
func (c *Config) Validate() error {
	if c.Scoring.BaseURL == "" {
		return fmt.Errorf("scoring.base_url is required")
	}
	if !strings.HasPrefix(c.Scoring.BaseURL, "http://") && !strings.HasPrefix(c.Scoring.BaseURL, "https://") {
		return fmt.Errorf("scoring.base_url must be an http(s) URL, got %q", c.Scoring.BaseURL)
	}
	if c.History.ProjectID != "" && (c.History.DatasetID == "" || c.History.TableID == "") {
		return fmt.Errorf("history.dataset_id and history.table_id are required when history.project_id is set")
	}
	return nil
}

// HistoryEnabled reports whether the BigQuery sink should be used.
func (c *Config) HistoryEnabled() bool { return c.History.ProjectID != "" }

// ArchiveEnabled reports whether GCS archival should be used.
func (c *Config) ArchiveEnabled() bool { return c.Archive.Bucket != "" }

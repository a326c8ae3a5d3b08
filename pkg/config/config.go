// Package config loads runtime configuration from an optional YAML file
// with TORWAR_* environment overrides on top.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything the CLI and server need at startup.
type Config struct {
	// DataDir is the root of the report store layout.
	DataDir string `yaml:"data_dir"`
	// ListenAddr is the bind address of the JSON API server.
	ListenAddr string `yaml:"listen_addr"`
	// LogMode selects the logger encoder ("dev" or "prod").
	LogMode string `yaml:"log_mode"`
	// CatalogPath points at a local review catalog for offline capture.
	CatalogPath string `yaml:"catalog_path"`
	// OutputDir is where exported report files are written.
	OutputDir string `yaml:"output_dir"`
	// CORSOrigins lists origins allowed to call the JSON API.
	CORSOrigins []string `yaml:"cors_origins"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() *Config {
	return &Config{
		DataDir:     "data/reports",
		ListenAddr:  ":8080",
		LogMode:     "dev",
		OutputDir:   "reports",
		CORSOrigins: []string{"http://localhost:3000"},
	}
}

// Load reads configuration from path (skipped when empty; a missing file at
// an explicit path is an error) and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TORWAR_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TORWAR_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("TORWAR_LOG_MODE"); v != "" {
		cfg.LogMode = v
	}
	if v := os.Getenv("TORWAR_CATALOG_PATH"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("TORWAR_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
}

// Package config loads server configuration from a yaml file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the file.
const (
	EnvAddr     = "RELGRAPH_ADDR"
	EnvSchema   = "RELGRAPH_SCHEMA"
	EnvLogLevel = "RELGRAPH_LOG_LEVEL"
)

// Config holds the server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`
	// SchemaPath points to the yaml schema snapshot to boot from. Empty
	// starts an empty repository with no relations.
	SchemaPath string `yaml:"schema"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:     ":8080",
		LogLevel: "info",
	}
}

// Load reads configuration with layered precedence: defaults, then the
// yaml file (when path is non-empty), then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvSchema); v != "" {
		cfg.SchemaPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

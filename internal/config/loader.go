package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"llmrouter/pkg/types"
)

// Defaults applied by ApplyDefaults when the corresponding field is zero.
const (
	DefaultAddr         = ":8080"
	DefaultDBPath       = "~/.local/share/llmrouter/llmrouter.db"
	DefaultLogLevel     = "info"
	DefaultMaxBodyBytes = 1 << 20
	DefaultHistoryLimit = 500
)

// Config holds runtime parameters for the daemon and CLI.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	Addr                  string   `json:"addr" yaml:"addr" toml:"addr"`
	DBPath                string   `json:"db_path" yaml:"db_path" toml:"db_path"`
	LogLevel              string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	RequestTimeoutSeconds int      `json:"request_timeout_seconds" yaml:"request_timeout_seconds" toml:"request_timeout_seconds"`
	MaxBodyBytes          int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	HistoryLimit          int      `json:"history_limit" yaml:"history_limit" toml:"history_limit"`
	Temperature           *float64 `json:"temperature" yaml:"temperature" toml:"temperature"`
	MaxTokens             int      `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens"`
	CompletionOnlyMarkers []string `json:"completion_only_markers" yaml:"completion_only_markers" toml:"completion_only_markers"`
	CORSEnabled           bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins           []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	// Service seeds the persisted service configuration when none has been saved yet.
	Service types.ServiceConfig `json:"service" yaml:"service" toml:"service"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ApplyDefaults fills unspecified fields.
func ApplyDefaults(cfg Config) Config {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.HistoryLimit == 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	if cfg.RequestTimeoutSeconds < 0 {
		cfg.RequestTimeoutSeconds = 0
	}
	return cfg
}

// Package config reads xedit settings from XEDIT_* environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. XEDIT_THEME.
const Prefix = "XEDIT"

// Config holds all application configuration.
type Config struct {
	// Open is the file or directory shown at startup. Empty starts an untitled document.
	Open string `envconfig:"OPEN"`

	// Listing and reading
	ShowHidden  bool     `envconfig:"SHOW_HIDDEN" default:"true"`
	Ignore      []string `envconfig:"IGNORE" default:".git,node_modules"`
	MaxFileSize int64    `envconfig:"MAX_FILE_SIZE" default:"10485760"`

	// Presentation
	Theme          string `envconfig:"THEME" default:"Teal"`
	Highlight      bool   `envconfig:"HIGHLIGHT" default:"true"`
	HighlightStyle string `envconfig:"HIGHLIGHT_STYLE" default:"monokai"`
	TabWidth       int    `envconfig:"TAB_WIDTH" default:"4"`

	LogConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	File        string `envconfig:"LOG_FILE"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.TabWidth < 1 {
		return nil, fmt.Errorf("failed to load config: %s_TAB_WIDTH must be positive, got %d", Prefix, cfg.TabWidth)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		ShowHidden:     true,
		Ignore:         []string{".git", "node_modules"},
		MaxFileSize:    10 << 20,
		Theme:          "Teal",
		Highlight:      true,
		HighlightStyle: "monokai",
		TabWidth:       4,
		LogConfig: LogConfig{
			Level: "info",
		},
	}
}

package bussola

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig holds the scalar navigation knobs a host can keep in a TOML
// file next to its other deployment configuration. Anything requiring code
// (auth checkers, feature ports, conditions, strategies with predicates)
// stays in Options.
//
// Example:
//
//	initial_path = "/home"
//	fallback_path = "/not-found"
//	unauthenticated_path = "/login"
//	log_level = "info"
//
//	[features]
//	enabled = ["new-dashboard"]
type FileConfig struct {
	InitialPath         string `toml:"initial_path"`
	FallbackPath        string `toml:"fallback_path"`
	UnauthenticatedPath string `toml:"unauthenticated_path"`
	LogPath             string `toml:"log_path"`
	LogLevel            string `toml:"log_level"`

	Features struct {
		Enabled []string `toml:"enabled"`
	} `toml:"features"`
}

// LoadConfig reads a FileConfig from a TOML file.
func LoadConfig(path string) (FileConfig, error) {
	var cfg FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Apply copies the file's knobs onto opts. Values already set on opts win;
// the file only fills gaps, so code-level configuration stays authoritative.
func (c FileConfig) Apply(opts *Options) {
	if opts.InitialPath == "" {
		opts.InitialPath = c.InitialPath
	}
	if opts.FallbackPath == "" {
		opts.FallbackPath = c.FallbackPath
	}
	if opts.Auth.UnauthenticatedPath == "" {
		opts.Auth.UnauthenticatedPath = c.UnauthenticatedPath
	}
	if opts.LogPath == "" {
		opts.LogPath = c.LogPath
	}
	if opts.LogLevel == "" {
		opts.LogLevel = c.LogLevel
	}
	if opts.Features == nil && len(c.Features.Enabled) > 0 {
		opts.Features = StaticFeatures(c.Features.Enabled...)
	}
}

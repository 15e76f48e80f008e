// Package config loads the optional TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/sokinpui/mdv/internal/perf"
)

// LimitsConfig mirrors perf.Limits in the config file.
type LimitsConfig struct {
	WarningThreshold int `toml:"warning_threshold"`
	MaxSize          int `toml:"max_size"`
	MaxDiffLines     int `toml:"max_diff_lines"`
	MaxContextLines  int `toml:"max_context_lines"`
	LinesPerChunk    int `toml:"lines_per_chunk"`
	InitialChunks    int `toml:"initial_chunks"`
}

// DisplayConfig holds rendering options.
type DisplayConfig struct {
	Style   string `toml:"style"`
	Context int    `toml:"context"`
	NoColor bool   `toml:"no_color"`
	// Compact shows only Context lines around changes when comparing
	// manifests. When false whole documents are shown.
	Compact bool `toml:"compact"`
	// HideManagedFields drops metadata.managedFields before comparing.
	HideManagedFields bool `toml:"hide_managed_fields"`
}

// Config is the whole config file.
type Config struct {
	Limits  LimitsConfig  `toml:"limits"`
	Display DisplayConfig `toml:"display"`
}

// Default returns the built-in configuration.
func Default() Config {
	l := perf.DefaultLimits()
	return Config{
		Limits: LimitsConfig{
			WarningThreshold: l.WarningThreshold,
			MaxSize:          l.MaxSize,
			MaxDiffLines:     l.MaxDiffLines,
			MaxContextLines:  l.MaxContextLines,
			LinesPerChunk:    l.LinesPerChunk,
			InitialChunks:    l.InitialChunks,
		},
		Display: DisplayConfig{
			Style:             "monokai",
			Context:           3,
			Compact:           true,
			HideManagedFields: true,
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/mdv/config.toml, or ~/.config/mdv/config.toml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "mdv", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mdv", "config.toml")
}

// Load reads path on top of the defaults. An empty path means DefaultPath,
// and a missing default file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to load config '%s': %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config '%s': %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every limit is usable.
func (c Config) Validate() error {
	l := c.Limits
	for _, f := range []struct {
		name  string
		value int
	}{
		{"warning_threshold", l.WarningThreshold},
		{"max_size", l.MaxSize},
		{"max_diff_lines", l.MaxDiffLines},
		{"max_context_lines", l.MaxContextLines},
		{"lines_per_chunk", l.LinesPerChunk},
		{"initial_chunks", l.InitialChunks},
	} {
		if f.value <= 0 {
			return fmt.Errorf("limits.%s must be positive, got %d", f.name, f.value)
		}
	}
	if l.MaxSize <= l.WarningThreshold {
		return fmt.Errorf("limits.max_size (%d) must be greater than limits.warning_threshold (%d)", l.MaxSize, l.WarningThreshold)
	}
	if c.Display.Context < 0 {
		return fmt.Errorf("display.context must not be negative, got %d", c.Display.Context)
	}
	return nil
}

// PerfLimits converts the limits section.
func (c Config) PerfLimits() perf.Limits {
	return perf.Limits{
		WarningThreshold: c.Limits.WarningThreshold,
		MaxSize:          c.Limits.MaxSize,
		MaxDiffLines:     c.Limits.MaxDiffLines,
		MaxContextLines:  c.Limits.MaxContextLines,
		LinesPerChunk:    c.Limits.LinesPerChunk,
		InitialChunks:    c.Limits.InitialChunks,
	}
}

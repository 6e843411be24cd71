// Package config holds xentonic's YAML configuration: rendering
// preferences, FJS namer settings and tuning defaults. Values come from
// defaults, then an optional config file, then environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all xentonic configuration.
type Config struct {
	// FJS namer settings
	FJS FJSConfig `yaml:"fjs"`

	// Rendering precision settings
	Render RenderConfig `yaml:"render"`

	// Tuning table defaults
	Tuning TuningConfig `yaml:"tuning"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// FJSConfig configures the FJS namer.
type FJSConfig struct {
	// ToleranceRatio is the formal-comma search radius as a ratio, e.g. "65/63".
	ToleranceRatio string `yaml:"tolerance_ratio"`
	// Style selects comma bracket rendering: ascii, html or tex.
	Style string `yaml:"style"`
}

// RenderConfig configures numeric rendering precision.
type RenderConfig struct {
	CentsPrecision int `yaml:"cents_precision"`
	RatioPrecision int `yaml:"ratio_precision"`
}

// TuningConfig configures the tuning table defaults.
type TuningConfig struct {
	BaseFreq  float64 `yaml:"base_freq"`
	Divisions int     `yaml:"divisions"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		FJS: FJSConfig{
			ToleranceRatio: "65/63",
			Style:          "ascii",
		},
		Render: RenderConfig{
			CentsPrecision: 2,
			RatioPrecision: 5,
		},
		Tuning: TuningConfig{
			BaseFreq:  440,
			Divisions: 12,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults
// when the file does not exist. Environment overrides apply last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets XENTONIC_* environment variables override the
// file and defaults.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("XENTONIC_FJS_TOLERANCE"); v != "" {
		c.FJS.ToleranceRatio = v
	}
	if v := os.Getenv("XENTONIC_FJS_STYLE"); v != "" {
		c.FJS.Style = v
	}
	if v := os.Getenv("XENTONIC_BASE_FREQ"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.Tuning.BaseFreq = f
		}
	}
	if v := os.Getenv("XENTONIC_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	switch c.FJS.Style {
	case "ascii", "html", "tex":
	default:
		return fmt.Errorf("invalid fjs style %q (want ascii, html or tex)", c.FJS.Style)
	}
	if c.Render.CentsPrecision < 0 || c.Render.RatioPrecision < 0 {
		return fmt.Errorf("render precisions must be nonnegative")
	}
	if c.Tuning.BaseFreq <= 0 {
		return fmt.Errorf("base frequency must be positive, got %v", c.Tuning.BaseFreq)
	}
	if c.Tuning.Divisions <= 0 {
		return fmt.Errorf("tuning divisions must be positive, got %d", c.Tuning.Divisions)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	return nil
}

// Package config loads the uibridge configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Command-line flags override it.
type Config struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	ImplicitWaitMs int    `yaml:"implicit_wait_ms"`
	PollIntervalMs int    `yaml:"poll_interval_ms"`
	LogLevel       string `yaml:"log_level"`
	DevLog         bool   `yaml:"dev_log"`

	// Layout is a simulated-host layout file; empty loads the built-in one.
	Layout string `yaml:"layout"`

	// ScreenshotScale scales wireframe screenshots; 0 means 1.
	ScreenshotScale float64 `yaml:"screenshot_scale"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Host:           "sim",
		Port:           7100,
		ImplicitWaitMs: 10000,
		PollIntervalMs: 100,
		LogLevel:       "info",
	}
}

// Load reads path over the defaults. A missing file is not an error when
// optional is set.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.ImplicitWaitMs < 0 {
		return fmt.Errorf("implicit_wait_ms must not be negative")
	}
	if c.PollIntervalMs <= 0 {
		return fmt.Errorf("poll_interval_ms must be positive")
	}
	if c.ScreenshotScale < 0 {
		return fmt.Errorf("screenshot_scale must not be negative")
	}
	return nil
}

// ImplicitWait returns the element search timeout.
func (c Config) ImplicitWait() time.Duration {
	return time.Duration(c.ImplicitWaitMs) * time.Millisecond
}

// PollInterval returns the element search retry interval.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

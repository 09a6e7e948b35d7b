// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted by [Load].
const EnvVar = "ATOM_TRACKER_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the configuration shared by atom-tracker and atom-store.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// API configures how the tracker reaches the atom service.
	API APIConfig `yaml:"api"`

	// Store configures the reference atom service.
	Store StoreConfig `yaml:"store"`

	// Log configures logging for both binaries.
	Log LogConfig `yaml:"log"`

	// Per-environment overrides, applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	API   *APIConfig   `yaml:"api,omitempty"`
	Store *StoreConfig `yaml:"store,omitempty"`
	Log   *LogConfig   `yaml:"log,omitempty"`
}

// APIConfig configures the atom service client.
type APIConfig struct {
	// BaseURL is the root URL of the atom service.
	// Default: http://127.0.0.1:8080
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each request, as a Go duration string.
	// Default: 10s
	Timeout string `yaml:"timeout"`
}

// StoreConfig configures the reference atom service.
type StoreConfig struct {
	// Listen is the TCP address the service binds.
	// Default: 127.0.0.1:8080
	Listen string `yaml:"listen"`

	// DataFile persists the collection as JSON after every mutation.
	// Empty keeps the collection in memory only.
	DataFile string `yaml:"data_file"`

	// SeedFile is a JSONC file of initial atoms, read when DataFile
	// does not exist yet.
	SeedFile string `yaml:"seed_file"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the default configuration. Load and LoadFile merge
// the file over these values; binaries run without a config file use
// them directly.
func Default() *Config {
	return &Config{
		Environment: Development,
		API: APIConfig{
			BaseURL: "http://127.0.0.1:8080",
			Timeout: "10s",
		},
		Store: StoreConfig{
			Listen: "127.0.0.1:8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by ATOM_TRACKER_CONFIG.
// There is no discovery: if the variable is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your config file, or use --config flag", EnvVar)
	}

	return LoadFile(configPath)
}

// Resolve picks the configuration for a binary: the --config flag
// value when set, then ATOM_TRACKER_CONFIG, then [Default].
func Resolve(flagPath string) (*Config, error) {
	if flagPath != "" {
		return LoadFile(flagPath)
	}
	if os.Getenv(EnvVar) != "" {
		return Load()
	}
	return Default(), nil
}

// LoadFile loads configuration from a specific file path, applies the
// section for the configured environment, and expands ${VAR} and
// ${VAR:-default} patterns in string fields.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}

	if overrides == nil {
		return
	}

	if overrides.API != nil {
		if overrides.API.BaseURL != "" {
			c.API.BaseURL = overrides.API.BaseURL
		}
		if overrides.API.Timeout != "" {
			c.API.Timeout = overrides.API.Timeout
		}
	}

	if overrides.Store != nil {
		if overrides.Store.Listen != "" {
			c.Store.Listen = overrides.Store.Listen
		}
		if overrides.Store.DataFile != "" {
			c.Store.DataFile = overrides.Store.DataFile
		}
		if overrides.Store.SeedFile != "" {
			c.Store.SeedFile = overrides.Store.SeedFile
		}
	}

	if overrides.Log != nil && overrides.Log.Level != "" {
		c.Log.Level = overrides.Log.Level
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in the
// string fields that commonly vary between machines.
func (c *Config) expandVariables() {
	c.API.BaseURL = expandVars(c.API.BaseURL)
	c.Store.Listen = expandVars(c.Store.Listen)
	c.Store.DataFile = expandVars(c.Store.DataFile)
	c.Store.SeedFile = expandVars(c.Store.SeedFile)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars replaces each ${VAR} with its environment value, or with
// the default after ":-" when the variable is unset or empty.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	} else if parsed, err := url.Parse(c.API.BaseURL); err != nil || parsed.Host == "" ||
		(parsed.Scheme != "http" && parsed.Scheme != "https") {
		errs = append(errs, fmt.Errorf("api.base_url must be an http or https URL (got %q)", c.API.BaseURL))
	}

	if _, err := c.API.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}

	if _, _, err := net.SplitHostPort(c.Store.Listen); err != nil {
		errs = append(errs, fmt.Errorf("store.listen must be host:port (got %q)", c.Store.Listen))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// TimeoutDuration parses Timeout. An empty value means no per-request
// timeout.
func (a APIConfig) TimeoutDuration() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	duration, err := time.ParseDuration(a.Timeout)
	if err != nil || duration < 0 {
		return 0, fmt.Errorf("api.timeout must be a non-negative duration (got %q)", a.Timeout)
	}
	return duration, nil
}

// SlogLevel maps Level to a slog level. An empty value means info.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", l.Level)
}

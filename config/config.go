/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	assocerrors "github.com/suparena/objectassoc/errors"
	"github.com/suparena/objectassoc/metrics"
	"github.com/suparena/objectassoc/registry"
	"github.com/suparena/objectassoc/storagemodels"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "OBJECTASSOC_"

// Config captures registry level configuration.
type Config struct {
	Shards           int    `yaml:"shards"`
	ConcurrencyMode  string `yaml:"concurrency_mode"`
	LogLevel         string `yaml:"log_level"`
	MetricsNamespace string `yaml:"metrics_namespace"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		ConcurrencyMode:  storagemodels.LastWriteWins.String(),
		LogLevel:         "info",
		MetricsNamespace: metrics.DefaultNamespace,
	}
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Parse decodes YAML on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if cfg, err = Parse(data); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from OBJECTASSOC_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvPrefix + "SHARDS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return assocerrors.NewValidationError("shards", fmt.Sprintf("not a number: %q", v))
		}
		c.Shards = n
	}
	if v, ok := os.LookupEnv(EnvPrefix + "CONCURRENCY_MODE"); ok {
		c.ConcurrencyMode = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "METRICS_NAMESPACE"); ok {
		c.MetricsNamespace = v
	}
	return nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.Shards < 0 {
		return assocerrors.NewValidationError("shards", "must not be negative")
	}
	if _, ok := storagemodels.ParseConcurrencyMode(c.ConcurrencyMode); !ok {
		return assocerrors.NewValidationError("concurrency_mode", fmt.Sprintf("unknown mode %q", c.ConcurrencyMode))
	}
	if _, err := c.Level(); err != nil {
		return assocerrors.NewValidationError("log_level", err.Error())
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

// Mode returns the configured concurrency mode.
func (c Config) Mode() storagemodels.ConcurrencyMode {
	mode, _ := storagemodels.ParseConcurrencyMode(c.ConcurrencyMode)
	return mode
}

// Options maps the configuration onto registry options. A nil logger keeps
// the registry's default; a nil reg disables metrics.
func (c Config) Options(logger *slog.Logger, reg prometheus.Registerer) []registry.Option {
	opts := []registry.Option{
		registry.WithShards(c.Shards),
		registry.WithConcurrencyMode(c.Mode()),
	}
	if logger != nil {
		opts = append(opts, registry.WithLogger(logger))
	}
	if reg != nil {
		opts = append(opts, registry.WithMetrics(metrics.New(reg, c.MetricsNamespace)))
	}
	return opts
}

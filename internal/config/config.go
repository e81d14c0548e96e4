// Package config loads mbm settings from defaults, a YAML file and MBM_*
// environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	DataDir         string        `mapstructure:"data_dir" yaml:"data_dir"`
	Storage         string        `mapstructure:"storage" yaml:"storage"`
	SnackbarSeconds int           `mapstructure:"snackbar_seconds" yaml:"snackbar_seconds"`
	Logging         LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Fixture         FixtureConfig `mapstructure:"fixture" yaml:"fixture"`
	Check           CheckConfig   `mapstructure:"check" yaml:"check"`
}

// LoggingConfig controls the zerolog setup.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`
	// Format is json or text.
	Format string `mapstructure:"format" yaml:"format"`
	// File is the log file path. Empty means stderr.
	File string `mapstructure:"file" yaml:"file"`
}

// FixtureConfig configures the standalone fixture web server.
type FixtureConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// CheckConfig configures the dead link checker.
type CheckConfig struct {
	Concurrency    int      `mapstructure:"concurrency" yaml:"concurrency"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	ExcludeDomains []string `mapstructure:"exclude_domains" yaml:"exclude_domains"`
}

// SnackbarDuration returns the snackbar lifetime.
func (c *Config) SnackbarDuration() time.Duration {
	return time.Duration(c.SnackbarSeconds) * time.Second
}

// CheckTimeout returns the per-request timeout of the link checker.
func (c *Config) CheckTimeout() time.Duration {
	return time.Duration(c.Check.TimeoutSeconds) * time.Second
}

// Default returns the default configuration rooted at dataDir.
func Default(dataDir string) Config {
	return Config{
		DataDir:         dataDir,
		Storage:         "sqlite",
		SnackbarSeconds: 4,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(dataDir, "mbm.log"),
		},
		Fixture: FixtureConfig{Addr: "127.0.0.1:8787"},
		Check: CheckConfig{
			Concurrency:    10,
			TimeoutSeconds: 10,
			ExcludeDomains: []string{"github.com", "gitlab.com"},
		},
	}
}

// DefaultDir returns ~/.config/mbm.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mbm"), nil
}

// Load reads the config file at path. A missing file is created with
// defaults. Environment variables such as MBM_STORAGE or
// MBM_LOGGING_LEVEL override file values.
func Load(path string) (*Config, error) {
	defaults := Default(filepath.Dir(path))

	v := viper.New()
	setDefaults(v, defaults)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("MBM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
		// Non-fatal: defaults still apply when the file cannot be created.
		_ = Save(path, &defaults)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.Logging.File = expandPath(cfg.Logging.File)
	if cfg.SnackbarSeconds <= 0 {
		cfg.SnackbarSeconds = defaults.SnackbarSeconds
	}
	if cfg.Check.Concurrency <= 0 {
		cfg.Check.Concurrency = defaults.Check.Concurrency
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("storage", d.Storage)
	v.SetDefault("snackbar_seconds", d.SnackbarSeconds)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("fixture.addr", d.Fixture.Addr)
	v.SetDefault("check.concurrency", d.Check.Concurrency)
	v.SetDefault("check.timeout_seconds", d.Check.TimeoutSeconds)
	v.SetDefault("check.exclude_domains", d.Check.ExcludeDomains)
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// Package config loads client configuration from an optional YAML file
// and SKYRESERVE_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL points at a local reservation backend.
	DefaultBaseURL = "http://localhost:8080"

	// DefaultPaymentDelay mirrors the gateway's processing window.
	DefaultPaymentDelay = 2 * time.Second

	configDirName  = ".skyreserve"
	configFileName = "config.yaml"
)

// StorageBackend selects where session state is persisted.
type StorageBackend string

const (
	// StorageFile keeps session state in a JSON file under the config
	// directory. The default for single-user machines.
	StorageFile StorageBackend = "file"
	// StorageRedis keeps session state in Redis, for kiosk or
	// shared-desk deployments where the home directory is ephemeral.
	StorageRedis StorageBackend = "redis"
)

// Config is the complete client configuration.
type Config struct {
	// BaseURL is the reservation backend. Auth endpoints live at its
	// root; flight and booking endpoints under the API prefix.
	BaseURL   string `yaml:"base_url"`
	APIPrefix string `yaml:"api_prefix,omitempty"`

	Storage  StorageBackend `yaml:"storage"`
	RedisURL string         `yaml:"redis_url,omitempty"`

	// PaymentDelayMS is the simulated gateway processing time in
	// milliseconds. Zero means the default.
	PaymentDelayMS int `yaml:"payment_delay_ms,omitempty"`

	Log LogConfig `yaml:"log,omitempty"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	JSON  bool   `yaml:"json,omitempty"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		APIPrefix: "/api",
		Storage:   StorageFile,
		Log:       LogConfig{Level: "info"},
	}
}

// PaymentDelay returns the configured gateway delay, falling back to
// the default when unset.
func (c Config) PaymentDelay() time.Duration {
	if c.PaymentDelayMS <= 0 {
		return DefaultPaymentDelay
	}
	return time.Duration(c.PaymentDelayMS) * time.Millisecond
}

// Dir returns the per-user configuration directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// Load reads the config file at path, if it exists, and then applies
// environment overrides. A missing file is not an error; an unreadable
// or malformed one is. Environment variables in the file body are
// expanded before parsing.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		dir, err := Dir()
		if err != nil {
			return cfg, err
		}
		path = filepath.Join(dir, configFileName)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults apply.
	default:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating the parent directory
// if needed. The file may carry a Redis URL with credentials, so it is
// written owner-only.
func Save(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	switch c.Storage {
	case StorageFile:
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis storage requires redis_url")
		}
	default:
		return fmt.Errorf("unknown storage backend %q (must be file or redis)", c.Storage)
	}
	if c.PaymentDelayMS < 0 {
		return fmt.Errorf("payment_delay_ms must be non-negative")
	}
	return nil
}

// applyEnv overlays SKYRESERVE_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SKYRESERVE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("SKYRESERVE_API_PREFIX"); v != "" {
		cfg.APIPrefix = v
	}
	if v := os.Getenv("SKYRESERVE_STORAGE"); v != "" {
		cfg.Storage = StorageBackend(v)
	}
	if v := os.Getenv("SKYRESERVE_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("SKYRESERVE_PAYMENT_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PaymentDelayMS = n
		}
	}
	if v := os.Getenv("SKYRESERVE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SKYRESERVE_LOG_JSON"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log.JSON = b
		}
	}
}

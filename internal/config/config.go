// Package config resolves runtime settings from a YAML file, VIZLEARN_*
// environment variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/vizlearn/internal/storage"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	// Backend selects the durable store: sqlite, redis or memory.
	Backend string `yaml:"backend"`
	// DBPath is the SQLite file. Empty means the default data path.
	DBPath string      `yaml:"db_path"`
	Redis  RedisConfig `yaml:"redis"`
	Retry  RetryConfig `yaml:"retry"`
	Log    LogConfig   `yaml:"log"`
	// Timezone names the location used for calendar days in streaks.
	// Empty means the system local zone.
	Timezone string `yaml:"timezone"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type RetryConfig struct {
	Attempts int    `yaml:"attempts"`
	Delay    string `yaml:"delay"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File receives log output. Empty disables logging.
	File string `yaml:"file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Backend: BackendSQLite,
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "vizlearn:",
		},
		Retry: RetryConfig{Attempts: 3, Delay: "100ms"},
		Log:   LogConfig{Level: "info"},
	}
}

// DefaultPath returns the config file location: VIZLEARN_CONFIG if set,
// else $XDG_CONFIG_HOME/vizlearn/config.yaml, else
// ~/.config/vizlearn/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv("VIZLEARN_CONFIG"); p != "" {
		return p, nil
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "vizlearn", "config.yaml"), nil
}

// Load reads YAML config from path on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads the config file and applies environment overrides. An
// explicit path must exist; the default path may be missing.
func Resolve(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	cfg, err := Load(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
		cfg = Default()
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from VIZLEARN_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("VIZLEARN_BACKEND", &c.Backend)
	str("VIZLEARN_DB", &c.DBPath)
	str("VIZLEARN_REDIS_ADDR", &c.Redis.Addr)
	str("VIZLEARN_REDIS_PASSWORD", &c.Redis.Password)
	str("VIZLEARN_REDIS_PREFIX", &c.Redis.Prefix)
	str("VIZLEARN_RETRY_DELAY", &c.Retry.Delay)
	str("VIZLEARN_LOG_LEVEL", &c.Log.Level)
	str("VIZLEARN_LOG_FILE", &c.Log.File)
	str("VIZLEARN_TZ", &c.Timezone)
	if err := num("VIZLEARN_REDIS_DB", &c.Redis.DB); err != nil {
		return err
	}
	return num("VIZLEARN_RETRY_ATTEMPTS", &c.Retry.Attempts)
}

// Overrides holds values set on the command line. Empty fields are
// ignored.
type Overrides struct {
	Backend string
	DBPath  string
}

// Apply overrides fields with any non-empty values in o.
func (c *Config) Apply(o Overrides) {
	if o.Backend != "" {
		c.Backend = o.Backend
	}
	if o.DBPath != "" {
		c.DBPath = o.DBPath
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want sqlite, redis or memory)", c.Backend)
	}
	if c.Retry.Attempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.Retry.Attempts)
	}
	if c.Retry.Delay != "" {
		if _, err := time.ParseDuration(c.Retry.Delay); err != nil {
			return fmt.Errorf("retry delay: %w", err)
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// StorageRetry converts the retry settings for the storage adapter.
func (c Config) StorageRetry() storage.RetryConfig {
	def := storage.DefaultRetryConfig()
	rc := storage.RetryConfig{
		Attempts: c.Retry.Attempts,
		Delay:    durationOr(c.Retry.Delay, def.Delay),
	}
	if rc.Attempts < 1 {
		rc.Attempts = def.Attempts
	}
	return rc
}

// Location returns the configured timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	return loc, nil
}

// durationOr parses a duration string or returns the fallback if empty or
// invalid.
func durationOr(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

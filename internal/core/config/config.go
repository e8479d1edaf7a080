// Package config handles configuration loading and validation for chefhat.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/chefhat/internal/core/language"
)

// Storage drivers.
const (
	DriverJSONFile = "jsonfile"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
)

var drivers = []string{DriverJSONFile, DriverSQLite, DriverRedis}

// Config holds the application configuration.
type Config struct {
	// Language is used until the user picks one.
	Language string        `yaml:"language"`
	Gemini   GeminiConfig  `yaml:"gemini"`
	Storage  StorageConfig `yaml:"storage"`
	DataDir  string        `yaml:"-"` // set by caller, not from config file
}

// GeminiConfig configures the generation service.
type GeminiConfig struct {
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	// Timeout bounds a single request at the transport. Zero means no limit.
	Timeout time.Duration `yaml:"timeout"`
}

// StorageConfig selects where history and the language selection live.
type StorageConfig struct {
	Driver string      `yaml:"driver"`
	Redis  RedisConfig `yaml:"redis"`
}

// RedisConfig is used when Storage.Driver is "redis".
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Language: string(language.Default),
		Gemini: GeminiConfig{
			Model:     "gemini-2.0-flash",
			BaseURL:   "https://generativelanguage.googleapis.com/v1beta",
			APIKeyEnv: "GEMINI_API_KEY",
		},
		Storage: StorageConfig{
			Driver: DriverJSONFile,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "chefhat",
			},
		},
	}
}

// Load reads configuration from the given path, sets the data directory and
// validates the result. If configPath is empty or doesn't exist, returns
// defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg, err := Parse(configPath, dataDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Parse is Load without validation. Only read and YAML errors are returned.
func Parse(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Language == "" {
		c.Language = defaults.Language
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = defaults.Gemini.Model
	}
	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = defaults.Gemini.BaseURL
	}
	c.Gemini.BaseURL = strings.TrimRight(c.Gemini.BaseURL, "/")
	if c.Gemini.APIKeyEnv == "" {
		c.Gemini.APIKeyEnv = defaults.Gemini.APIKeyEnv
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = defaults.Storage.Driver
	}
	if c.Storage.Redis.Addr == "" {
		c.Storage.Redis.Addr = defaults.Storage.Redis.Addr
	}
	if c.Storage.Redis.Prefix == "" {
		c.Storage.Redis.Prefix = defaults.Storage.Redis.Prefix
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrors
	add := func(field, msg string) {
		errs = append(errs, criterio.FieldErrors{{Field: field, Err: errors.New(msg)}}...)
	}

	if c.DataDir == "" {
		add("data_dir", "data directory cannot be empty")
	}

	if _, err := language.Parse(c.Language); err != nil {
		add("language", err.Error())
	}

	if c.Gemini.Model == "" {
		add("gemini.model", "model cannot be empty")
	}
	if !strings.HasPrefix(c.Gemini.BaseURL, "http://") && !strings.HasPrefix(c.Gemini.BaseURL, "https://") {
		add("gemini.base_url", fmt.Sprintf("%q must be an http or https URL", c.Gemini.BaseURL))
	}
	if c.Gemini.Timeout < 0 {
		add("gemini.timeout", "timeout cannot be negative")
	}

	if !slices.Contains(drivers, c.Storage.Driver) {
		add("storage.driver", fmt.Sprintf("unknown driver %q (use %s)", c.Storage.Driver, strings.Join(drivers, ", ")))
	}
	if c.Storage.Driver == DriverRedis && c.Storage.Redis.DB < 0 {
		add("storage.redis.db", "db cannot be negative")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DefaultLanguage returns the configured default language.
func (c *Config) DefaultLanguage() language.Code {
	code, err := language.Parse(c.Language)
	if err != nil {
		return language.Default
	}
	return code
}

// APIKey returns the generation service credential from the environment.
func (c *Config) APIKey() string {
	return strings.TrimSpace(os.Getenv(c.Gemini.APIKeyEnv))
}

// HistoryFile returns the path to the history JSON file.
func (c *Config) HistoryFile() string {
	return filepath.Join(c.DataDir, "history.json")
}

// SettingsFile returns the path to the settings JSON file.
func (c *Config) SettingsFile() string {
	return filepath.Join(c.DataDir, "settings.json")
}

// DatabaseFile returns the path to the SQLite database.
func (c *Config) DatabaseFile() string {
	return filepath.Join(c.DataDir, "chefhat.db")
}

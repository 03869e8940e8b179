// Package config loads folium runtime settings from an optional YAML file
// overridden by FOLIUM_* environment variables.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FOLIUM_"

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config holds the settings shared by the CLI subcommands.
type Config struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	Store    string `yaml:"store" env:"STORE"`
	Port     int    `yaml:"port" env:"PORT"`

	// BlockTypesDir is a loam directory of block type definitions.
	BlockTypesDir string `yaml:"block_types_dir" env:"BLOCK_TYPES_DIR"`

	// EncryptionKey is a hex encoded 32 byte AES key. Empty disables encryption.
	EncryptionKey string `yaml:"encryption_key" env:"ENCRYPTION_KEY"`
	// PIIFields are key patterns whose post and edit values are masked
	// before they are stored.
	PIIFields []string `yaml:"pii_fields" env:"PII_FIELDS" envSeparator:","`

	File   FileConfig   `yaml:"file" envPrefix:"FILE_"`
	Redis  RedisConfig  `yaml:"redis" envPrefix:"REDIS_"`
	SQLite SQLiteConfig `yaml:"sqlite" envPrefix:"SQLITE_"`
}

// FileConfig configures the file store.
type FileConfig struct {
	Dir string `yaml:"dir" env:"DIR"`
}

// RedisConfig configures the redis store and locker.
type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"ADDR"`
	Password string        `yaml:"password" env:"PASSWORD"`
	DB       int           `yaml:"db" env:"DB"`
	Prefix   string        `yaml:"prefix" env:"PREFIX"`
	TTL      time.Duration `yaml:"ttl" env:"TTL"`
}

// SQLiteConfig configures the sqlite store.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"PATH"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Store:    StoreMemory,
		Port:     8080,
		File:     FileConfig{Dir: ".folium/documents"},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		SQLite:   SQLiteConfig{Path: ".folium/folium.db"},
	}
}

// Load reads path (when not empty) over the defaults, then applies the
// environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	var errs []error
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis, StoreSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}
	if c.EncryptionKey != "" {
		if _, err := c.Key(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, p := range c.PIIFields {
		if _, err := regexp.Compile(p); err != nil {
			errs = append(errs, fmt.Errorf("invalid pii pattern %q: %w", p, err))
		}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Key decodes EncryptionKey. It returns nil when encryption is disabled.
func (c Config) Key() ([]byte, error) {
	if c.EncryptionKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(c.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key is not hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

// Level returns the parsed log level, falling back to Info.
func (c Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

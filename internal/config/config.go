// Package config loads runtime settings from an optional config file,
// a .env file and ZALOGA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// EnvPrefix prefixes every environment variable the config reads.
const EnvPrefix = "ZALOGA"

// Config holds runtime settings.
type Config struct {
	Storage  string
	DB       string
	Log      string
	Currency string
	Redis    RedisConfig
	Session  SessionConfig
}

// RedisConfig configures the redis storage backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// SessionConfig configures CLI login sessions.
type SessionConfig struct {
	File string
	TTL  time.Duration
}

// Load reads configuration. Values from .env in the working directory are
// exported to the environment first. A non-empty path names a config file
// (yaml, toml or json) that must exist. Environment variables win over the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Storage:  strings.ToLower(strings.TrimSpace(v.GetString("storage"))),
		DB:       v.GetString("db"),
		Log:      v.GetString("log"),
		Currency: v.GetString("currency"),
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			Prefix:   v.GetString("redis.prefix"),
		},
		Session: SessionConfig{
			File: v.GetString("session.file"),
			TTL:  v.GetDuration("session.ttl"),
		},
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage", StorageSQLite)
	v.SetDefault("db", "zaloga.sqlite3")
	v.SetDefault("log", "")
	v.SetDefault("currency", "RM")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "zaloga:")
	v.SetDefault("session.file", defaultSessionFile())
	v.SetDefault("session.ttl", 12*time.Hour)
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zaloga-session"
	}
	return filepath.Join(home, ".zaloga-session")
}

// Validate checks that the settings can be used to open a backend.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageRedis:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}
	if c.DB == "" {
		return errors.New("database path must not be empty")
	}
	if c.Storage == StorageRedis && c.Redis.Addr == "" {
		return errors.New("redis address must not be empty")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.Session.TTL)
	}
	return nil
}

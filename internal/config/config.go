// Package config loads server configuration from defaults, an optional YAML
// file, an optional .env file and the environment, in that order of precedence
// (later sources win).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete server configuration.
type Config struct {
	Addr       string        `yaml:"addr"`
	DBPath     string        `yaml:"db_path"`
	StaticPath string        `yaml:"static_path"`
	Log        LogConfig     `yaml:"log"`
	Auth       AuthConfig    `yaml:"auth"`
	Digest     DigestConfig  `yaml:"digest"`
	Shutdown   time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text (colored) or json
}

// AuthConfig configures JWT issuing.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// DigestConfig configures the daily Telegram digest. The digest is disabled
// when TelegramToken is empty.
type DigestConfig struct {
	TelegramToken string        `yaml:"telegram_token"`
	ChatID        int64         `yaml:"chat_id"`
	Hour          int           `yaml:"hour"`
	CheckInterval time.Duration `yaml:"check_interval"`
}

// Enabled reports whether the digest should run.
func (d DigestConfig) Enabled() bool {
	return d.TelegramToken != ""
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		Addr:       ":8080",
		DBPath:     "./data/chores.db",
		StaticPath: "../frontend/static",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Digest: DigestConfig{
			Hour:          8,
			CheckInterval: time.Minute,
		},
		Shutdown: 15 * time.Second,
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment are used.
func Load(path string) (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Addr = getEnv("ADDR", cfg.Addr)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.StaticPath = getEnv("STATIC_PATH", cfg.StaticPath)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Digest.TelegramToken = getEnv("TELEGRAM_TOKEN", cfg.Digest.TelegramToken)

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TOKEN_TTL: %w", err)
		}
		cfg.Auth.TokenTTL = ttl
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.Digest.ChatID = id
	}
	if v := os.Getenv("DIGEST_HOUR"); v != "" {
		hour, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DIGEST_HOUR: %w", err)
		}
		cfg.Digest.Hour = hour
	}
	return nil
}

// Validate checks the configuration for values the server cannot start with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("jwt secret is required (set JWT_SECRET)")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("token ttl must be positive")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if c.Digest.Enabled() {
		if c.Digest.ChatID == 0 {
			return errors.New("digest chat id is required when a telegram token is set")
		}
		if c.Digest.Hour < 0 || c.Digest.Hour > 23 {
			return fmt.Errorf("digest hour %d out of range 0-23", c.Digest.Hour)
		}
		if c.Digest.CheckInterval <= 0 {
			return errors.New("digest check interval must be positive")
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

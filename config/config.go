// Package config loads the server configuration from an optional YAML file
// and environment variables. Environment variables win over the file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds every setting of the loan-amortizer server.
type Config struct {
	Addr     string `yaml:"addr"`
	LogLevel string `yaml:"log_level"`

	RateLimitCapacity int           `yaml:"rate_limit_capacity"`
	RateLimitWindow   time.Duration `yaml:"rate_limit_window"`

	CacheBackend string        `yaml:"cache_backend"`
	RedisAddr    string        `yaml:"redis_addr"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`

	HistorySize int `yaml:"history_size"`

	MaxLoanAmount   float64 `yaml:"max_loan_amount"`
	MaxInterestRate float64 `yaml:"max_interest_rate"`
	MaxTermPeriods  int     `yaml:"max_term_periods"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:              ":8080",
		LogLevel:          "info",
		RateLimitCapacity: 5,
		RateLimitWindow:   time.Minute,
		CacheBackend:      CacheMemory,
		RedisAddr:         "localhost:6379",
		CacheTTL:          time.Hour,
		HistorySize:       1000,
		MaxLoanAmount:     1_000_000_000,
		MaxInterestRate:   10,
		MaxTermPeriods:    5200,
	}
}

// Load builds the configuration from defaults, the YAML file named by
// LOAN_CONFIG_FILE (if any) and the environment.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("LOAN_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(os.Getenv); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv(getenv func(string) string) error {
	if v := getenv("ADDR"); v != "" {
		c.Addr = v
	}
	if v := getenv("PORT"); v != "" {
		c.Addr = ":" + v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("CACHE_BACKEND"); v != "" {
		c.CacheBackend = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}

	var err error
	if c.RateLimitCapacity, err = envInt(getenv, "RATE_LIMIT_CAPACITY", c.RateLimitCapacity); err != nil {
		return err
	}
	if c.RateLimitWindow, err = envDuration(getenv, "RATE_LIMIT_WINDOW", c.RateLimitWindow); err != nil {
		return err
	}
	if c.CacheTTL, err = envDuration(getenv, "CACHE_TTL", c.CacheTTL); err != nil {
		return err
	}
	if c.HistorySize, err = envInt(getenv, "HISTORY_SIZE", c.HistorySize); err != nil {
		return err
	}
	if c.MaxLoanAmount, err = envFloat(getenv, "MAX_LOAN_AMOUNT", c.MaxLoanAmount); err != nil {
		return err
	}
	if c.MaxInterestRate, err = envFloat(getenv, "MAX_INTEREST_RATE", c.MaxInterestRate); err != nil {
		return err
	}
	if c.MaxTermPeriods, err = envInt(getenv, "MAX_TERM_PERIODS", c.MaxTermPeriods); err != nil {
		return err
	}
	return nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address is required")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.RateLimitCapacity <= 0 {
		return fmt.Errorf("rate limit capacity must be positive, got %d", c.RateLimitCapacity)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %s", c.RateLimitWindow)
	}
	switch c.CacheBackend {
	case CacheMemory:
	case CacheRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis address is required for the redis cache backend")
		}
	default:
		return fmt.Errorf("invalid cache backend: %s", c.CacheBackend)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must be >= 0, got %s", c.CacheTTL)
	}
	if c.HistorySize <= 0 {
		return fmt.Errorf("history size must be positive, got %d", c.HistorySize)
	}
	if c.MaxLoanAmount <= 0 || c.MaxInterestRate <= 0 || c.MaxTermPeriods <= 0 {
		return fmt.Errorf("engine limits must be positive")
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level: %s", c.LogLevel)
}

func envInt(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envFloat(getenv func(string) string, key string, def float64) (float64, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func envDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

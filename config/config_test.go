package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadEnv_Overrides(t *testing.T) {
	cfg := Default()
	err := cfg.loadEnv(fakeEnv(map[string]string{
		"PORT":                "9090",
		"LOG_LEVEL":           "debug",
		"CACHE_BACKEND":       "redis",
		"REDIS_ADDR":          "redis:6379",
		"RATE_LIMIT_CAPACITY": "50",
		"RATE_LIMIT_WINDOW":   "30s",
		"CACHE_TTL":           "10m",
		"HISTORY_SIZE":        "20",
		"MAX_LOAN_AMOUNT":     "5000000",
		"MAX_INTEREST_RATE":   "0.5",
		"MAX_TERM_PERIODS":    "480",
	}))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, CacheRedis, cfg.CacheBackend)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 50, cfg.RateLimitCapacity)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 20, cfg.HistorySize)
	assert.Equal(t, 5_000_000.0, cfg.MaxLoanAmount)
	assert.Equal(t, 0.5, cfg.MaxInterestRate)
	assert.Equal(t, 480, cfg.MaxTermPeriods)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadEnv_InvalidValues(t *testing.T) {
	for _, key := range []string{"RATE_LIMIT_CAPACITY", "RATE_LIMIT_WINDOW", "CACHE_TTL", "HISTORY_SIZE", "MAX_LOAN_AMOUNT", "MAX_INTEREST_RATE", "MAX_TERM_PERIODS"} {
		t.Run(key, func(t *testing.T) {
			cfg := Default()
			err := cfg.loadEnv(fakeEnv(map[string]string{key: "not-a-number"}))
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "empty address", modify: func(c *Config) { c.Addr = "" }},
		{name: "unknown log level", modify: func(c *Config) { c.LogLevel = "verbose" }},
		{name: "zero rate limit capacity", modify: func(c *Config) { c.RateLimitCapacity = 0 }},
		{name: "zero rate limit window", modify: func(c *Config) { c.RateLimitWindow = 0 }},
		{name: "unknown cache backend", modify: func(c *Config) { c.CacheBackend = "memcached" }},
		{name: "redis without address", modify: func(c *Config) { c.CacheBackend = CacheRedis; c.RedisAddr = "" }},
		{name: "negative cache ttl", modify: func(c *Config) { c.CacheTTL = -time.Second }},
		{name: "zero history size", modify: func(c *Config) { c.HistorySize = 0 }},
		{name: "zero loan limit", modify: func(c *Config) { c.MaxLoanAmount = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":7070"
cache_backend: redis
redis_addr: "cache:6379"
cache_ttl: 5m
history_size: 50
`), 0o600))

	cfg := Default()
	require.NoError(t, cfg.loadFile(path))

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, CacheRedis, cfg.CacheBackend)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 50, cfg.HistorySize)
	assert.Equal(t, 5, cfg.RateLimitCapacity, "unset keys keep their defaults")
}

func TestLoadFile_Errors(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.loadFile(filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unknown_key: 1\n"), 0o600))
	assert.Error(t, cfg.loadFile(path))
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history_size: 50\nlog_level: warn\n"), 0o600))

	t.Setenv("LOAN_CONFIG_FILE", path)
	t.Setenv("HISTORY_SIZE", "75")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 75, cfg.HistorySize)
	assert.Equal(t, "warn", cfg.LogLevel)
}

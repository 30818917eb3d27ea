package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMethods(t *testing.T) {
	m := parseMethods("get, head ,POST")
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true, "POST": true}, m)

	assert.Empty(t, parseMethods(""))
}

func TestLoadCacheConfig_Defaults(t *testing.T) {
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Methods["GET"])
	assert.Equal(t, 30*time.Second, cfg.TTL)
	assert.Equal(t, "cache", cfg.Prefix)
	assert.Equal(t, 1<<20, cfg.MaxBodyBytes)
}

func TestLoadCacheConfig_FromEnv(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_METHODS", "GET,HEAD")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("CACHE_PREFIX", "venues")

	cfg := LoadCacheConfig()
	assert.False(t, cfg.Enabled)
	assert.True(t, cfg.Methods["HEAD"])
	assert.Equal(t, 2*time.Minute, cfg.TTL)
	assert.Equal(t, "venues", cfg.Prefix)
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	// TTL is raised to cover several refill cycles.
	assert.Equal(t, 10*time.Second, cfg.TTL)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_STR", "hello")
	t.Setenv("X_BOOL", "yes")
	t.Setenv("X_INT", "17")
	t.Setenv("X_DUR", "250ms")
	t.Setenv("X_BAD", "wat")

	assert.Equal(t, "hello", envStr("X_STR", "def"))
	assert.Equal(t, "def", envStr("X_UNSET", "def"))
	assert.True(t, envBool("X_BOOL", false))
	assert.False(t, envBool("X_BAD", false))
	assert.Equal(t, 17, envInt("X_INT", 0))
	assert.Equal(t, 5, envInt("X_BAD", 5))
	assert.Equal(t, 250*time.Millisecond, envDur("X_DUR", time.Second))
	assert.Equal(t, time.Second, envDur("X_BAD", time.Second))
}

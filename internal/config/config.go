// Package config loads runtime configuration from environment variables.
// The service is configured entirely through the environment (optionally
// seeded from a .env file by the entrypoint); there is no config file format.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds the core runtime settings of the booking service.  Redis,
// cache and rate-limit settings live in their own structs because the
// service must keep working when those subsystems are absent.
type Config struct {
	Env            string // deployment environment ("dev", "test", "prod")
	Port           string // HTTP port to listen on
	DBUser         string
	DBPass         string // empty allowed for local development
	DBHost         string
	DBPort         string
	DBName         string
	JWTSecret      string // HMAC secret for signing access tokens
	AccessTTLMin   int    // access token lifetime in minutes
	RefreshTTLDays int    // refresh token lifetime in days
	BcryptCost     int    // bcrypt cost factor for password hashing
}

// Load builds a Config from the environment.  Missing required variables
// are fatal: a venue service with no database or signing secret cannot
// serve anything, so it refuses to start.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
	}
}

func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatal().Str("var", key).Msg("missing required env var")
	}
	return v
}

func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatal().Str("var", key).Str("value", s).Msg("env var is not an integer")
	}
	return n
}

// Shared optional-variable helpers for the cache and rate-limit loaders.

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

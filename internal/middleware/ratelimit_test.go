package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/config"
)

// Buckets are keyed by client IP and route only: the limiter sits in front
// of authentication, so identity claims must never influence the key.
func TestRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/venues", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/venues")

	cfg := config.RateLimitConfig{Prefix: "rl"}
	// httptest.NewRequest sets RemoteAddr to 192.0.2.1:1234.
	assert.Equal(t, "rl:ip:192.0.2.1:route:GET /v1/venues", rateKey(cfg, c))
}

func TestNewRateLimiter_PassthroughWithoutRedis(t *testing.T) {
	mw := NewRateLimiter(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil)
	rec, _ := runChain(mw, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	mw = NewRateLimiter(config.RateLimitConfig{Enabled: false}, nil)
	rec, _ = runChain(mw, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

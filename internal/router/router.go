// Package router maps HTTP routes to handlers.  Routes are grouped by
// audience: unauthenticated system routes, auth, public browse, owner
// management and customer booking.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/config"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/handler"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication and no
// domain logic.  Currently that is only the health check used by load
// balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints under /v1/auth plus the
// authenticated /v1/me route.  Logout takes a refresh token in the body
// and therefore needs no JWT.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER", "CUSTOMER"),
	)
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints: venue
// listings, the weekly opening-hours overview and date availability.
// These are the read-heavy routes, so the Redis response cache is applied
// here and nowhere else.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/v1", middleware.NewResponseCache(cacheCfg, rdb))
	g.GET("/venues", p.ListVenues)
	g.GET("/venues/:id/hours", p.GetVenueOverview)
	g.GET("/venues/:id/availability", p.GetVenueAvailability)
}

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/handler"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/middleware"
)

// RegisterOwner registers OWNER-scoped venue management under /v1.
// Every route requires a valid JWT with the OWNER role; per-venue
// ownership is enforced again inside the handlers.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER"),
	)

	// ---- Venues ----
	g.POST("/venues", o.CreateVenue)
	g.GET("/my-venues", o.ListMyVenues)
	g.PUT("/venues/:id", o.UpdateVenue)
	g.PATCH("/venues/:id", o.UpdateVenue)
	g.DELETE("/venues/:id", o.DeleteVenue)

	// ---- Opening hours ----
	// The weekly schedule is edited as a whole: GET returns the stored
	// slots, PUT replaces them after validation, and the default route
	// seeds a Mon-Fri 09:00-17:00 schedule for a venue with no hours yet.
	g.GET("/venues/:id/opening-hours", o.GetVenueHours)
	g.PUT("/venues/:id/opening-hours", o.ReplaceVenueHours)
	g.POST("/venues/:id/opening-hours/default", o.SeedVenueHours)

	// ---- Bookings on owned venues ----
	g.GET("/venues/:id/bookings", o.ListVenueBookings)
}

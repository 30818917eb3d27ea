package router

import (
	"github.com/labstack/echo/v4"

	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/handler"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/middleware"
)

// RegisterCustomer registers CUSTOMER-scoped booking endpoints under /v1.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER"),
	)

	g.POST("/venues/:id/bookings", h.CreateBooking)
	g.GET("/my-bookings", h.ListMyBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.DELETE("/bookings/:id", h.CancelBooking)
}

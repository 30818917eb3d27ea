// Public browse endpoints return sanitized venue data for guests: the venue
// list, the weekly opening-hours overview and day availability.  No
// authentication is applied; owner-only detail stays on the owner routes.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/availability"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/openinghours"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/repository"
)

// PublicHandler bundles the repositories for unauthenticated browsing.
type PublicHandler struct {
	VenueRepo   *repository.VenueRepo
	HoursRepo   *repository.OpeningHourRepo
	BookingRepo *repository.BookingRepo
}

func NewPublicHandler(venues *repository.VenueRepo, hours *repository.OpeningHourRepo, bookings *repository.BookingRepo) *PublicHandler {
	if venues == nil || hours == nil || bookings == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{VenueRepo: venues, HoursRepo: hours, BookingRepo: bookings}
}

type publicVenue struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

// ListVenues handles GET /v1/venues and returns all venues with only their
// public fields.
func (h *PublicHandler) ListVenues(c echo.Context) error {
	items, err := h.VenueRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]publicVenue, 0, len(items))
	for _, v := range items {
		out = append(out, publicVenue{ID: v.ID, Name: v.Name, Timezone: v.Timezone})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetVenueOverview handles GET /v1/venues/:id/hours and returns the weekly
// overview derived from the venue's active opening hours: seven rows,
// Sunday first, each either formatted service windows or "Closed".
func (h *PublicHandler) GetVenueOverview(c echo.Context) error {
	venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	venue, err := h.VenueRepo.GetByID(c.Request().Context(), venueID)
	if err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	rows, err := h.HoursRepo.ListByVenue(c.Request().Context(), venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	schedule, err := openinghours.FromSlots(hoursToSlots(rows))
	if err != nil {
		// Stored rows failing validation would mean a write path bug.
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "corrupt opening hours"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"venue":    publicVenue{ID: venue.ID, Name: venue.Name, Timezone: venue.Timezone},
		"overview": schedule.WeeklyOverview(),
	})
}

// GetVenueAvailability handles GET /v1/venues/:id/availability?date=&duration=
// and returns the bookable time slots for the requested date, derived from
// the venue's active opening hours with confirmed bookings marked
// unavailable.  duration is in minutes and defaults to 30.
func (h *PublicHandler) GetVenueAvailability(c echo.Context) error {
	venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	slotMinutes := availability.DefaultSlotMinutes
	if raw := c.QueryParam("duration"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 24*60 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration must be a positive number of minutes"})
		}
		slotMinutes = n
	}

	if _, err := h.VenueRepo.GetByID(c.Request().Context(), venueID); err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	rows, err := h.HoursRepo.ListByVenue(c.Request().Context(), venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	windows, err := h.BookingRepo.WindowsForDate(c.Request().Context(), venueID, date.Format("2006-01-02"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	booked := make([]availability.Window, 0, len(windows))
	for _, w := range windows {
		booked = append(booked, availability.Window{Start: w[0], End: w[1]})
	}

	slots := availability.SlotsForDate(hoursToSlots(rows), date, slotMinutes, booked)
	if slots == nil {
		slots = []availability.TimeSlot{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":  date.Format("2006-01-02"),
		"slots": slots,
	})
}

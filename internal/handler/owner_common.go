package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/model"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/openinghours"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/repository"
)

// OwnerHandler bundles the repositories owners need to manage their venues,
// opening hours and bookings.
type OwnerHandler struct {
	VenueRepo   *repository.VenueRepo
	HoursRepo   *repository.OpeningHourRepo
	BookingRepo *repository.BookingRepo
}

// NewOwnerHandler constructs an OwnerHandler and panics if any dependency is
// nil; wiring errors should fail at startup, not per request.
func NewOwnerHandler(venues *repository.VenueRepo, hours *repository.OpeningHourRepo, bookings *repository.BookingRepo) *OwnerHandler {
	if venues == nil || hours == nil || bookings == nil {
		panic("nil repository passed to NewOwnerHandler")
	}
	return &OwnerHandler{VenueRepo: venues, HoursRepo: hours, BookingRepo: bookings}
}

// getUserID extracts the user_id stored in the context by the JWT middleware
// and converts it to uint64.  JWT numeric claims arrive as float64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// hoursToSlots converts stored opening-hour rows into schedule slots.
func hoursToSlots(rows []model.OpeningHour) []openinghours.Slot {
	out := make([]openinghours.Slot, 0, len(rows))
	for _, h := range rows {
		out = append(out, openinghours.Slot{
			ID:        h.ID,
			DayOfWeek: h.DayOfWeek,
			OpenTime:  h.OpenTime,
			CloseTime: h.CloseTime,
			Name:      h.Name,
			IsActive:  h.IsActive,
		})
	}
	return out
}

// slotsToHours converts schedule slots into rows for the given venue.
func slotsToHours(venueID uint64, slots []openinghours.Slot) []model.OpeningHour {
	out := make([]model.OpeningHour, 0, len(slots))
	for _, sl := range slots {
		out = append(out, model.OpeningHour{
			ID:        sl.ID,
			VenueID:   venueID,
			DayOfWeek: sl.DayOfWeek,
			OpenTime:  sl.OpenTime,
			CloseTime: sl.CloseTime,
			Name:      sl.Name,
			IsActive:  sl.IsActive,
		})
	}
	return out
}

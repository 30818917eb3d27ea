package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/availability"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/model"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/openinghours"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/repository"
)

// CustomerHandler bundles the repositories customers need to place and
// manage bookings.
type CustomerHandler struct {
	VenueRepo   *repository.VenueRepo
	HoursRepo   *repository.OpeningHourRepo
	BookingRepo *repository.BookingRepo
}

func NewCustomerHandler(venues *repository.VenueRepo, hours *repository.OpeningHourRepo, bookings *repository.BookingRepo) *CustomerHandler {
	if venues == nil || hours == nil || bookings == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{VenueRepo: venues, HoursRepo: hours, BookingRepo: bookings}
}

type bookingReq struct {
	Date      string `json:"date"`       // "YYYY-MM-DD"
	StartTime string `json:"start_time"` // "HH:MM"
	EndTime   string `json:"end_time"`   // "HH:MM"
	Note      string `json:"note"`
}

// CreateBooking handles POST /v1/venues/:id/bookings.  The requested window
// must fall inside the venue's active opening hours for that date's weekday
// and must not clash with another confirmed booking.
func (h *CustomerHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body bookingReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	if !openinghours.ValidTime(body.StartTime) || !openinghours.ValidTime(body.EndTime) || body.StartTime >= body.EndTime {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time/end_time must be HH:MM with start before end"})
	}

	if _, err := h.VenueRepo.GetByID(c.Request().Context(), venueID); err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	// The committed opening-hours snapshot decides bookability.
	rows, err := h.HoursRepo.ListByVenue(c.Request().Context(), venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !availability.WindowBookable(hoursToSlots(rows), int(date.Weekday()), body.StartTime, body.EndTime) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "requested window is outside the venue's opening hours"})
	}

	booking := &model.Booking{
		VenueID:   venueID,
		UserID:    userID,
		Date:      date.Format("2006-01-02"),
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Note:      strings.TrimSpace(body.Note),
	}
	if err := h.BookingRepo.Create(c.Request().Context(), booking); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "window already booked"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}
	return c.JSON(http.StatusCreated, booking)
}

// ListMyBookings handles GET /v1/my-bookings.
func (h *CustomerHandler) ListMyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.BookingRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetBooking handles GET /v1/bookings/:id for the booking's customer.
func (h *CustomerHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	booking, err := h.BookingRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if booking.UserID != userID {
		// Report not-found rather than leaking another customer's booking.
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, booking)
}

// CancelBooking handles DELETE /v1/bookings/:id: the customer cancels their
// own confirmed booking.  The row is kept with status CANCELLED.
func (h *CustomerHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.BookingRepo.CancelByIDAndUser(c.Request().Context(), id, userID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

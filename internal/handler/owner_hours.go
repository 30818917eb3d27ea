package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/openinghours"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/queue"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/repository"
	publisher "github.com/gcmweb/sully-booking-system-v2-sub000/internal/service"
)

// openingHoursPayload is the wire shape of an opening-hours collection, both
// for reads and for the bulk-replace write.  Every slot must be present in a
// write even if unchanged; the stored collection becomes exactly this list.
type openingHoursPayload struct {
	OpeningHours []openinghours.Slot `json:"opening_hours"`
}

// GetVenueHours handles GET /v1/venues/:id/opening-hours and returns the
// venue's full stored collection, inactive slots included, so an editing
// client starts from the complete snapshot.
func (h *OwnerHandler) GetVenueHours(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.VenueRepo.GetByIDAndOwner(c.Request().Context(), venueID, ownerID); err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	rows, err := h.HoursRepo.ListByVenue(c.Request().Context(), venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, openingHoursPayload{OpeningHours: hoursToSlots(rows)})
}

// ReplaceVenueHours handles PUT /v1/venues/:id/opening-hours.  The submitted
// collection replaces the stored one wholesale: there is no per-slot merge,
// and a failed save leaves the stored snapshot untouched so the client can
// retry the same payload.  Validation runs through the schedule model, so
// bad weekdays, malformed times and inverted windows are rejected with 422
// before anything is written.
func (h *OwnerHandler) ReplaceVenueHours(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body openingHoursPayload
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	venue, err := h.VenueRepo.GetByIDAndOwner(c.Request().Context(), venueID, ownerID)
	if err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	schedule, err := openinghours.FromSlots(body.OpeningHours)
	if err != nil {
		var ve *openinghours.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error(), "field": ve.Field})
		}
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	slots := schedule.Slots()
	if err := h.HoursRepo.ReplaceForVenue(c.Request().Context(), venueID, slotsToHours(venueID, slots)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save opening hours"})
	}

	// Downstream consumers (availability caches, audit) learn about the new
	// snapshot via the broker; a publish failure never fails the save.
	_ = publisher.PublishHoursUpdated(c.Request().Context(), queue.HoursUpdatedEvent{
		VenueID:   venueID,
		VenueName: venue.Name,
		OwnerID:   ownerID,
		SlotCount: len(slots),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})

	// Return the stored snapshot (IDs may have been assigned on insert).
	rows, err := h.HoursRepo.ListByVenue(c.Request().Context(), venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, openingHoursPayload{OpeningHours: hoursToSlots(rows)})
}

// SeedVenueHours handles POST /v1/venues/:id/opening-hours/default and
// applies the seed schedule (Mon-Fri 09:00-17:00) to a venue that has no
// opening hours yet.  Venues with existing hours are left alone: 409.
func (h *OwnerHandler) SeedVenueHours(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.VenueRepo.GetByIDAndOwner(c.Request().Context(), venueID, ownerID); err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	existing, err := h.HoursRepo.ListByVenue(c.Request().Context(), venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if len(existing) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "venue already has opening hours"})
	}
	slots := openinghours.Default().Slots()
	if err := h.HoursRepo.ReplaceForVenue(c.Request().Context(), venueID, slotsToHours(venueID, slots)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save opening hours"})
	}
	return c.JSON(http.StatusCreated, openingHoursPayload{OpeningHours: slots})
}

// ListVenueBookings handles GET /v1/venues/:id/bookings for the owner.
func (h *OwnerHandler) ListVenueBookings(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.VenueRepo.GetByIDAndOwner(c.Request().Context(), venueID, ownerID); err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items, err := h.BookingRepo.ListByVenue(c.Request().Context(), venueID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

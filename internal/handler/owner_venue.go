package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/model"
	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/repository"
)

type venueReq struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

// CreateVenue handles POST /v1/venues and creates a new venue for the
// authenticated owner.  The venue starts without opening hours; the owner
// seeds or submits them through the opening-hours endpoints.
func (h *OwnerHandler) CreateVenue(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body venueReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	tz := strings.TrimSpace(body.Timezone)
	if tz == "" {
		tz = "UTC"
	}
	venue := &model.Venue{OwnerID: ownerID, Name: name, Timezone: tz}
	if err := h.VenueRepo.Create(c.Request().Context(), venue); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "venue name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create venue"})
	}
	return c.JSON(http.StatusCreated, venue)
}

// ListMyVenues handles GET /v1/my-venues and returns the owner's venues.
func (h *OwnerHandler) ListMyVenues(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.VenueRepo.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateVenue handles PUT/PATCH /v1/venues/:id and updates name/timezone.
func (h *OwnerHandler) UpdateVenue(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body venueReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	current, err := h.VenueRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		name = current.Name
	}
	tz := strings.TrimSpace(body.Timezone)
	if tz == "" {
		tz = current.Timezone
	}

	if err := h.VenueRepo.Update(c.Request().Context(), id, ownerID, name, tz); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "venue name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, _ := h.VenueRepo.GetByID(c.Request().Context(), id)
	return c.JSON(http.StatusOK, updated)
}

// DeleteVenue handles DELETE /v1/venues/:id.  The venue's opening hours and
// bookings are removed with it.
func (h *OwnerHandler) DeleteVenue(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	switch err := h.VenueRepo.DeleteByIDAndOwner(c.Request().Context(), id, ownerID); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}

package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/model"
)

// OpeningHourRepo persists the weekly opening hours of a venue.  The write
// path is deliberately bulk-only: a save replaces the venue's entire
// collection inside one transaction, so the stored rows are always exactly
// the snapshot the owner last submitted.  There are no per-row updates.
type OpeningHourRepo struct {
	db *sql.DB
}

// NewOpeningHourRepo constructs an OpeningHourRepo with the given DB handle.
func NewOpeningHourRepo(db *sql.DB) *OpeningHourRepo {
	return &OpeningHourRepo{db: db}
}

// ListByVenue returns the venue's opening-hour rows in insertion order,
// active and inactive alike.  The array may be empty; a venue with no rows
// simply has no configured hours yet.
func (r *OpeningHourRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.OpeningHour, error) {
	const q = `SELECT id, venue_id, day_of_week, open_time, close_time, name, is_active, created_at
	           FROM opening_hours WHERE venue_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OpeningHour
	for rows.Next() {
		var h model.OpeningHour
		if err := rows.Scan(&h.ID, &h.VenueID, &h.DayOfWeek, &h.OpenTime, &h.CloseTime, &h.Name, &h.IsActive, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceForVenue deletes the venue's stored opening hours and inserts the
// submitted collection in its place, all within one transaction.  Every slot
// must be resubmitted even if unchanged; rows the submission omits are gone
// after the save.  Slots without an ID (never persisted before) are assigned
// one here.  On any error the transaction rolls back and the stored snapshot
// is left exactly as it was, so the caller can retry the same save.  A failed
// commit is an error like any other: the caller must never see success for a
// snapshot that was not stored.
func (r *OpeningHourRepo) ReplaceForVenue(ctx context.Context, venueID uint64, hours []model.OpeningHour) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM opening_hours WHERE venue_id = ?", venueID); err != nil {
		return err
	}

	const qInsert = `INSERT INTO opening_hours
	                 (id, venue_id, day_of_week, open_time, close_time, name, is_active, position)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := tx.PrepareContext(ctx, qInsert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for pos, h := range hours {
		id := h.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err = stmt.ExecContext(ctx, id, venueID, h.DayOfWeek, h.OpenTime, h.CloseTime, h.Name, h.IsActive, pos); err != nil {
			return err
		}
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/model"
)

// ErrVenueNotFound is returned when a venue cannot be found in the DB.
var ErrVenueNotFound = errors.New("venue not found")

// VenueRepo encapsulates all database queries related to venues.  It depends
// on a sql.DB connection configured at startup.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// Create inserts a new venue.  On success the venue's ID, CreatedAt and
// UpdatedAt fields are populated so callers receive a fully populated record.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const qInsert = "INSERT INTO venues (owner_id, name, timezone) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, v.OwnerID, v.Name, v.Timezone)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)

	// Read the row back to pick up the default timestamp columns.
	const qSelect = "SELECT owner_id, name, timezone, created_at, updated_at FROM venues WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, v.ID).
		Scan(&v.OwnerID, &v.Name, &v.Timezone, &v.CreatedAt, &v.UpdatedAt)
}

// GetByID fetches a venue by its ID regardless of owner.  Returns
// ErrVenueNotFound when no row exists.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = "SELECT id, owner_id, name, timezone, created_at, updated_at FROM venues WHERE id = ?"
	var v model.Venue
	if err := r.db.QueryRowContext(ctx, q, id).
		Scan(&v.ID, &v.OwnerID, &v.Name, &v.Timezone, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// GetByIDAndOwner fetches a venue by id but only if it belongs to the given
// owner.  If the venue doesn't exist or is owned by someone else,
// ErrVenueNotFound is returned; ownership is not leaked to the caller.
func (r *VenueRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Venue, error) {
	const q = "SELECT id, owner_id, name, timezone, created_at, updated_at FROM venues WHERE id = ? AND owner_id = ?"
	var v model.Venue
	if err := r.db.QueryRowContext(ctx, q, id, ownerID).
		Scan(&v.ID, &v.OwnerID, &v.Name, &v.Timezone, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ListByOwner returns all venues for a specific owner ordered by id.
func (r *VenueRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Venue, error) {
	const q = `SELECT id, owner_id, name, timezone, created_at, updated_at
	           FROM venues WHERE owner_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Venue
	for rows.Next() {
		v := new(model.Venue)
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.Name, &v.Timezone, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns all venues for public browsing.  Only ID, Name and
// Timezone are selected so owner and timestamp columns stay private.
func (r *VenueRepo) ListAll(ctx context.Context) ([]*model.Venue, error) {
	const q = "SELECT id, name, timezone FROM venues ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Venue
	for rows.Next() {
		v := new(model.Venue)
		if err := rows.Scan(&v.ID, &v.Name, &v.Timezone); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update renames a venue and/or changes its timezone if it belongs to the
// provided owner.  Returns sql.ErrNoRows when no row is affected.
func (r *VenueRepo) Update(ctx context.Context, id, ownerID uint64, name, timezone string) error {
	const q = `UPDATE venues
	           SET name = ?, timezone = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, name, timezone, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByIDAndOwner removes a venue together with its opening hours and
// bookings, provided it belongs to the given owner.  Returns sql.ErrNoRows
// when the venue does not exist and ErrForbidden when it is owned by a
// different user.  The cascade runs inside one transaction; a failed commit
// surfaces as an error.
func (r *VenueRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) (err error) {
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

	var dbOwnerID uint64
	if err = tx.QueryRowContext(ctx, "SELECT owner_id FROM venues WHERE id = ?", id).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return err
	}
	if dbOwnerID != ownerID {
		err = ErrForbidden
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM bookings WHERE venue_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM opening_hours WHERE venue_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM venues WHERE id = ?", id); err != nil {
		return err
	}
	return nil
}

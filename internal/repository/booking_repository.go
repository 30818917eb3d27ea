package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/model"
)

// ErrBookingNotFound is returned when a booking lookup fails.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo provides persistence for customer bookings.  Whether a
// requested window lies inside the venue's opening hours is decided by the
// handler against the committed opening-hours snapshot; this repository only
// guards against double booking of the same window.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// Create inserts a confirmed booking unless another confirmed booking
// already overlaps the requested window.  The overlap check and the insert
// run in one transaction; on a clash ErrConflict is returned.  On success
// the booking's ID and timestamps are populated.  A commit failure surfaces
// as an error: a booking only counts as CONFIRMED once it is on disk.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) (err error) {
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

	// Half-open windows [start, end) clash when each starts before the
	// other ends.  FOR UPDATE serializes concurrent attempts on the same
	// venue and date.
	const qOverlap = `SELECT COUNT(*) FROM bookings
	                  WHERE venue_id = ? AND date = ? AND status = 'CONFIRMED'
	                    AND start_time < ? AND ? < end_time
	                  FOR UPDATE`
	var clashes int
	if err = tx.QueryRowContext(ctx, qOverlap, b.VenueID, b.Date, b.EndTime, b.StartTime).Scan(&clashes); err != nil {
		return err
	}
	if clashes > 0 {
		err = ErrConflict
		return err
	}

	const qInsert = `INSERT INTO bookings (venue_id, user_id, date, start_time, end_time, status, note)
	                 VALUES (?, ?, ?, ?, ?, 'CONFIRMED', ?)`
	res, err := tx.ExecContext(ctx, qInsert, b.VenueID, b.UserID, b.Date, b.StartTime, b.EndTime, b.Note)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.Status = model.BookingConfirmed

	const qSelect = "SELECT created_at, updated_at FROM bookings WHERE id = ?"
	err = tx.QueryRowContext(ctx, qSelect, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt)
	return err
}

// GetByID fetches a booking regardless of who owns it.  Callers enforce
// access (booking customer or venue owner) themselves.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT id, venue_id, user_id, date, start_time, end_time, status, note, created_at, updated_at
	           FROM bookings WHERE id = ?`
	var b model.Booking
	if err := r.db.QueryRowContext(ctx, q, id).
		Scan(&b.ID, &b.VenueID, &b.UserID, &b.Date, &b.StartTime, &b.EndTime, &b.Status, &b.Note, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListByUser returns a customer's bookings, newest date first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Booking, error) {
	const q = `SELECT id, venue_id, user_id, date, start_time, end_time, status, note, created_at, updated_at
	           FROM bookings WHERE user_id = ? ORDER BY date DESC, start_time DESC`
	return r.list(ctx, q, userID)
}

// ListByVenue returns all bookings for a venue, newest date first.  The
// handler verifies venue ownership before calling.
func (r *BookingRepo) ListByVenue(ctx context.Context, venueID uint64) ([]*model.Booking, error) {
	const q = `SELECT id, venue_id, user_id, date, start_time, end_time, status, note, created_at, updated_at
	           FROM bookings WHERE venue_id = ? ORDER BY date DESC, start_time DESC`
	return r.list(ctx, q, venueID)
}

// WindowsForDate returns the [start, end) windows of confirmed bookings on a
// venue and date, for the availability calculator.
func (r *BookingRepo) WindowsForDate(ctx context.Context, venueID uint64, date string) ([][2]string, error) {
	const q = `SELECT start_time, end_time FROM bookings
	           WHERE venue_id = ? AND date = ? AND status = 'CONFIRMED'
	           ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, q, venueID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][2]string
	for rows.Next() {
		var w [2]string
		if err := rows.Scan(&w[0], &w[1]); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CancelByIDAndUser marks a customer's own confirmed booking as cancelled.
// Returns sql.ErrNoRows when no matching confirmed booking exists.
func (r *BookingRepo) CancelByIDAndUser(ctx context.Context, id, userID uint64) error {
	const q = `UPDATE bookings SET status = 'CANCELLED', updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND user_id = ? AND status = 'CONFIRMED'`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *BookingRepo) list(ctx context.Context, q string, arg uint64) ([]*model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Booking
	for rows.Next() {
		b := new(model.Booking)
		if err := rows.Scan(&b.ID, &b.VenueID, &b.UserID, &b.Date, &b.StartTime, &b.EndTime, &b.Status, &b.Note, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

package model

import "time"

// Booking statuses.
const (
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// Booking records a customer's reservation of a time window at a venue on a
// specific date.  The window must fall inside the venue's active opening
// hours at creation time; that check runs in the handler against the
// committed opening-hours snapshot.
//
// Fields:
//  ID        – primary key identifier.
//  VenueID   – venue being booked.
//  UserID    – customer who made the booking.
//  Date      – calendar day of the booking (no time component).
//  StartTime – "HH:MM" start of the window, local to the venue.
//  EndTime   – "HH:MM" end of the window, strictly after StartTime.
//  Status    – CONFIRMED or CANCELLED.
//  Note      – optional free-text note from the customer.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Booking struct {
	ID        uint64    `json:"id"`         // bookings.id
	VenueID   uint64    `json:"venue_id"`   // bookings.venue_id
	UserID    uint64    `json:"user_id"`    // bookings.user_id
	Date      string    `json:"date"`       // bookings.date ("YYYY-MM-DD")
	StartTime string    `json:"start_time"` // bookings.start_time
	EndTime   string    `json:"end_time"`   // bookings.end_time
	Status    string    `json:"status"`     // bookings.status
	Note      string    `json:"note"`       // bookings.note
	CreatedAt time.Time `json:"created_at"` // bookings.created_at
	UpdatedAt time.Time `json:"updated_at"` // bookings.updated_at
}

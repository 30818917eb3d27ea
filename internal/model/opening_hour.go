package model

import "time"

// OpeningHour is one persisted service window on one weekday for a venue.
// A venue may hold several rows per weekday (split service periods such as
// lunch and dinner).  Rows are replaced in bulk whenever the owner saves an
// edit session; there is no per-row update path.
//
// Fields:
//  ID        – stable identifier (uuid), assigned client- or server-side.
//  VenueID   – owning venue.
//  DayOfWeek – 0 (Sunday) through 6 (Saturday).
//  OpenTime  – "HH:MM" wall-clock open, local to the venue.
//  CloseTime – "HH:MM" wall-clock close, strictly after OpenTime.
//  Name      – optional label ("Lunch", "Dinner").
//  IsActive  – inactive rows are kept but hidden from the public overview.
//  CreatedAt – creation timestamp.
type OpeningHour struct {
	ID        string    // opening_hours.id
	VenueID   uint64    // opening_hours.venue_id
	DayOfWeek int       // opening_hours.day_of_week
	OpenTime  string    // opening_hours.open_time
	CloseTime string    // opening_hours.close_time
	Name      string    // opening_hours.name
	IsActive  bool      // opening_hours.is_active
	CreatedAt time.Time // opening_hours.created_at
}

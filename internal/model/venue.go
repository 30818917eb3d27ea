package model

import "time"

// Venue represents a bookable venue owned by a user.  A venue carries its
// own weekly opening hours and receives bookings from customers.  This
// struct corresponds to a row in the `venues` table.
//
// Fields:
//  ID        – primary key identifier.
//  OwnerID   – user ID of the venue owner.
//  Name      – unique name of the venue per owner.
//  Timezone  – IANA timezone name the opening hours are local to.
//  CreatedAt – timestamp when the venue was created.
//  UpdatedAt – timestamp of last update.
type Venue struct {
	ID        uint64    `json:"id"`         // venues.id
	OwnerID   uint64    `json:"owner_id"`   // venues.owner_id
	Name      string    `json:"name"`       // venues.name
	Timezone  string    `json:"timezone"`   // venues.timezone
	CreatedAt time.Time `json:"created_at"` // venues.created_at
	UpdatedAt time.Time `json:"updated_at"` // venues.updated_at
}

// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// HoursUpdatedEvent is published after a venue's opening hours are replaced
// by a successful bulk save.  Downstream consumers (availability caches,
// audit logging) react without querying the primary database.
type HoursUpdatedEvent struct {
	VenueID   uint64 `json:"venue_id"`
	VenueName string `json:"venue_name"`
	OwnerID   uint64 `json:"owner_id"`
	SlotCount int    `json:"slot_count"`
	UpdatedAt string `json:"updated_at"`
}

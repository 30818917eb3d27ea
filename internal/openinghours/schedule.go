// Package openinghours maintains the weekly opening-hours collection for a
// single venue during an edit session.  A schedule is a flat, ordered list of
// time slots; a day may carry several slots (split service such as lunch and
// dinner) and slots are only persisted in bulk, never one at a time.  The
// package is pure in-memory logic: persistence lives in the repository layer.
package openinghours

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Defaults applied to newly added slots.  They match the seed schedule a
// venue receives on first setup (Mon-Fri 09:00-17:00).
const (
	DefaultOpenTime  = "09:00"
	DefaultCloseTime = "17:00"
)

// Day indices follow time.Weekday: 0 = Sunday … 6 = Saturday.
const daysPerWeek = 7

// Slot is one contiguous service window on one weekday.  OpenTime and
// CloseTime are wall-clock "HH:MM" values local to the venue; the fixed-width
// format makes lexicographic comparison equivalent to chronological order.
// ID is a stable identifier assigned when the slot is created in memory; it
// may be empty for slots received over the wire that were never persisted.
type Slot struct {
	ID        string `json:"id,omitempty"`
	DayOfWeek int    `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
}

// Label renders the slot for display, e.g. "Lunch: 12:00 - 15:00" or
// "09:00 - 17:00" when the slot has no name.
func (s Slot) Label() string {
	if s.Name != "" {
		return fmt.Sprintf("%s: %s - %s", s.Name, s.OpenTime, s.CloseTime)
	}
	return fmt.Sprintf("%s - %s", s.OpenTime, s.CloseTime)
}

// ErrSlotNotFound is returned when a mutation addresses an index or ID that
// does not exist in the current collection.
var ErrSlotNotFound = errors.New("slot not found")

// ValidationError reports a rejected field value.  Handlers translate it
// into an HTTP 422 response.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Schedule is the in-memory opening-hours collection for one venue edit
// session.  Insertion order is preserved; per-day display order is derived
// on read.  Schedule is not safe for concurrent use: an edit session is a
// single caller mutating its own copy.
type Schedule struct {
	slots []Slot
}

// New returns an empty schedule.
func New() *Schedule {
	return &Schedule{}
}

// Default returns the seed schedule applied when a venue is first set up:
// Monday through Friday, 09:00-17:00, all active.
func Default() *Schedule {
	s := New()
	for day := 1; day <= 5; day++ {
		_, _ = s.AddSlot(day) // day range is known valid
	}
	return s
}

// FromSlots builds a schedule from an existing collection, e.g. one loaded
// from the store or submitted by a client.  Every slot is validated and
// non-empty IDs must be unique across the collection; the input slice is
// copied so later mutations do not alias the caller's data.
func FromSlots(slots []Slot) (*Schedule, error) {
	seen := make(map[string]struct{}, len(slots))
	for i, sl := range slots {
		if err := validateSlot(sl); err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		if sl.ID != "" {
			if _, dup := seen[sl.ID]; dup {
				return nil, fmt.Errorf("slot %d: %w", i, &ValidationError{Field: "id", Reason: "duplicate slot id"})
			}
			seen[sl.ID] = struct{}{}
		}
	}
	s := New()
	s.slots = append(s.slots, slots...)
	return s, nil
}

// Len reports the number of slots, active or not.
func (s *Schedule) Len() int {
	return len(s.slots)
}

// Slots returns a copy of the full collection in insertion order.  Both
// active and inactive slots are included: the persisted snapshot must be
// complete so downstream consumers can apply their own filtering.
func (s *Schedule) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// AddSlot appends a new active slot with the default 09:00-17:00 window on
// the given day and returns it.  The day must be in 0-6.
func (s *Schedule) AddSlot(day int) (Slot, error) {
	if err := validateDay(day); err != nil {
		return Slot{}, err
	}
	sl := Slot{
		ID:        uuid.NewString(),
		DayOfWeek: day,
		OpenTime:  DefaultOpenTime,
		CloseTime: DefaultCloseTime,
		IsActive:  true,
	}
	s.slots = append(s.slots, sl)
	return sl, nil
}

// SlotPatch carries a partial update for a slot.  Nil fields are left
// unchanged.
type SlotPatch struct {
	DayOfWeek *int
	OpenTime  *string
	CloseTime *string
	Name      *string
	IsActive  *bool
}

// UpdateSlot applies a patch to the slot at the given collection index and
// returns the updated slot.  The patched slot is validated as a whole before
// it is committed, so a rejected update leaves the collection untouched.
// Returns ErrSlotNotFound when the index is out of range.
func (s *Schedule) UpdateSlot(index int, p SlotPatch) (Slot, error) {
	if index < 0 || index >= len(s.slots) {
		return Slot{}, ErrSlotNotFound
	}
	sl := s.slots[index]
	if p.DayOfWeek != nil {
		sl.DayOfWeek = *p.DayOfWeek
	}
	if p.OpenTime != nil {
		sl.OpenTime = *p.OpenTime
	}
	if p.CloseTime != nil {
		sl.CloseTime = *p.CloseTime
	}
	if p.Name != nil {
		sl.Name = *p.Name
	}
	if p.IsActive != nil {
		sl.IsActive = *p.IsActive
	}
	if err := validateSlot(sl); err != nil {
		return Slot{}, err
	}
	s.slots[index] = sl
	return sl, nil
}

// RemoveSlot deletes the slot at the given index.  Subsequent indices shift
// down by one; callers holding positions from a filtered view must re-derive
// them after any mutation.  Returns ErrSlotNotFound when out of range.
func (s *Schedule) RemoveSlot(index int) error {
	if index < 0 || index >= len(s.slots) {
		return ErrSlotNotFound
	}
	s.slots = append(s.slots[:index], s.slots[index+1:]...)
	return nil
}

// UpdateSlotByID applies a patch to the slot with the given stable ID.
func (s *Schedule) UpdateSlotByID(id string, p SlotPatch) (Slot, error) {
	i, ok := s.indexOf(id)
	if !ok {
		return Slot{}, ErrSlotNotFound
	}
	return s.UpdateSlot(i, p)
}

// RemoveSlotByID deletes the slot with the given stable ID.
func (s *Schedule) RemoveSlotByID(id string) error {
	i, ok := s.indexOf(id)
	if !ok {
		return ErrSlotNotFound
	}
	return s.RemoveSlot(i)
}

func (s *Schedule) indexOf(id string) (int, bool) {
	if id == "" {
		return 0, false
	}
	for i, sl := range s.slots {
		if sl.ID == id {
			return i, true
		}
	}
	return 0, false
}

// CopyToAllDays reads the slot at sourceIndex and appends one copy per other
// weekday, carrying the source's window, name and active flag.  Copies get
// fresh IDs.  Repeated invocation accumulates duplicate slots on the target
// days: the operation does not deduplicate and is not idempotent.
func (s *Schedule) CopyToAllDays(sourceIndex int) error {
	if sourceIndex < 0 || sourceIndex >= len(s.slots) {
		return ErrSlotNotFound
	}
	src := s.slots[sourceIndex]
	for day := 0; day < daysPerWeek; day++ {
		if day == src.DayOfWeek {
			continue
		}
		s.slots = append(s.slots, Slot{
			ID:        uuid.NewString(),
			DayOfWeek: day,
			OpenTime:  src.OpenTime,
			CloseTime: src.CloseTime,
			Name:      src.Name,
			IsActive:  src.IsActive,
		})
	}
	return nil
}

// IndexedSlot pairs a slot with its position in the full collection so that
// edits routed through a day-scoped view can address the right record.
type IndexedSlot struct {
	Slot
	Index int
}

// SlotsForDay returns the slots on the given day sorted by OpenTime
// ascending.  The sort is stable so same-time slots keep insertion order.
// The schedule itself is not mutated.
func (s *Schedule) SlotsForDay(day int) []IndexedSlot {
	var out []IndexedSlot
	for i, sl := range s.slots {
		if sl.DayOfWeek == day {
			out = append(out, IndexedSlot{Slot: sl, Index: i})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OpenTime < out[j].OpenTime
	})
	return out
}

// DayOverview is one row of the public weekly overview.
type DayOverview struct {
	DayOfWeek int      `json:"day_of_week"`
	Hours     []string `json:"hours"`
}

// ClosedLabel is reported for days without any active slot.
const ClosedLabel = "Closed"

// WeeklyOverview derives the public display projection: for each of the
// seven days, the active slots formatted via Label in OpenTime order, or
// the single entry "Closed" when no active slot exists.  Inactive slots are
// retained in the collection but never shown here.
func (s *Schedule) WeeklyOverview() []DayOverview {
	out := make([]DayOverview, daysPerWeek)
	for day := 0; day < daysPerWeek; day++ {
		var hours []string
		for _, sl := range s.SlotsForDay(day) {
			if sl.IsActive {
				hours = append(hours, sl.Label())
			}
		}
		if len(hours) == 0 {
			hours = []string{ClosedLabel}
		}
		out[day] = DayOverview{DayOfWeek: day, Hours: hours}
	}
	return out
}

func validateDay(day int) error {
	if day < 0 || day >= daysPerWeek {
		return &ValidationError{Field: "day_of_week", Reason: "must be between 0 (Sunday) and 6 (Saturday)"}
	}
	return nil
}

func validateSlot(sl Slot) error {
	if err := validateDay(sl.DayOfWeek); err != nil {
		return err
	}
	if !ValidTime(sl.OpenTime) {
		return &ValidationError{Field: "open_time", Reason: "must be HH:MM in 24-hour form"}
	}
	if !ValidTime(sl.CloseTime) {
		return &ValidationError{Field: "close_time", Reason: "must be HH:MM in 24-hour form"}
	}
	// Overnight windows (open after close) are not supported; the close time
	// must fall on the same day, strictly after the open time.
	if sl.OpenTime >= sl.CloseTime {
		return &ValidationError{Field: "close_time", Reason: "must be after open_time"}
	}
	return nil
}

// ValidTime reports whether v is a well-formed "HH:MM" 24-hour wall-clock
// value.  The format is fixed width: "9:30" is rejected, "09:30" accepted.
func ValidTime(v string) bool {
	if len(v) != 5 || v[2] != ':' {
		return false
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	hour := int(v[0]-'0')*10 + int(v[1]-'0')
	min := int(v[3]-'0')*10 + int(v[4]-'0')
	return hour < 24 && min < 60
}

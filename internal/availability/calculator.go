// Package availability derives bookable time slots for a calendar date from
// a venue's committed opening hours.  Only active opening-hours slots count;
// overlapping windows on the same day are merged into their union before
// slots are cut, so a double-entered lunch window never yields duplicate
// bookable slots.
package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/openinghours"
)

// DefaultSlotMinutes is used when the caller does not specify a duration.
const DefaultSlotMinutes = 30

// TimeSlot is one bookable window within a single day.  Start and End are
// "HH:MM" wall-clock values local to the venue.
type TimeSlot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// Window is a half-open [Start, End) wall-clock range, used to pass already
// booked intervals into the calculator.
type Window struct {
	Start string
	End   string
}

type span struct{ start, end int } // minutes since midnight

// SlotsForDate returns the bookable slots for the given date, derived from
// the venue's opening hours.  Slots overlapping any of the booked windows
// are returned with Available=false rather than omitted, so clients can
// render a full grid.  A day with no active opening window yields nil.
func SlotsForDate(slots []openinghours.Slot, date time.Time, slotMinutes int, booked []Window) []TimeSlot {
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}
	open := openSpans(slots, int(date.Weekday()))
	if len(open) == 0 {
		return nil
	}

	var taken []span
	for _, w := range booked {
		if s, ok := parseSpan(w.Start, w.End); ok {
			taken = append(taken, s)
		}
	}

	var out []TimeSlot
	for _, win := range open {
		for cur := win.start; cur+slotMinutes <= win.end; cur += slotMinutes {
			slot := span{start: cur, end: cur + slotMinutes}
			out = append(out, TimeSlot{
				Start:     clock(slot.start),
				End:       clock(slot.end),
				Available: !overlapsAny(slot, taken),
			})
		}
	}
	return out
}

// WindowBookable reports whether the half-open window [start, end) on the
// given weekday falls entirely inside the venue's active opening hours.
// Because overlapping opening slots are merged first, a window spanning two
// adjacent or overlapping service periods is accepted.
func WindowBookable(slots []openinghours.Slot, weekday int, start, end string) bool {
	want, ok := parseSpan(start, end)
	if !ok {
		return false
	}
	for _, win := range openSpans(slots, weekday) {
		if want.start >= win.start && want.end <= win.end {
			return true
		}
	}
	return false
}

// openSpans filters to the active slots on a weekday and merges overlapping
// or touching ranges into their union, sorted by start time.
func openSpans(slots []openinghours.Slot, weekday int) []span {
	var spans []span
	for _, sl := range slots {
		if !sl.IsActive || sl.DayOfWeek != weekday {
			continue
		}
		if s, ok := parseSpan(sl.OpenTime, sl.CloseTime); ok {
			spans = append(spans, s)
		}
	}
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

func overlapsAny(s span, taken []span) bool {
	for _, t := range taken {
		if s.start < t.end && t.start < s.end {
			return true
		}
	}
	return false
}

func parseSpan(start, end string) (span, bool) {
	a, ok := minutes(start)
	if !ok {
		return span{}, false
	}
	b, ok := minutes(end)
	if !ok || b <= a {
		return span{}, false
	}
	return span{start: a, end: b}, true
}

func minutes(v string) (int, bool) {
	if !openinghours.ValidTime(v) {
		return 0, false
	}
	h := int(v[0]-'0')*10 + int(v[1]-'0')
	m := int(v[3]-'0')*10 + int(v[4]-'0')
	return h*60 + m, true
}

func clock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcmweb/sully-booking-system-v2-sub000/internal/openinghours"
)

// 2026-01-14 is a Wednesday (weekday 3).
var wednesday = time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)

func slot(day int, open, close string, active bool) openinghours.Slot {
	return openinghours.Slot{DayOfWeek: day, OpenTime: open, CloseTime: close, IsActive: active}
}

func TestSlotsForDate(t *testing.T) {
	tests := []struct {
		name        string
		slots       []openinghours.Slot
		slotMinutes int
		booked      []Window
		wantCount   int
		wantFirst   string
		wantLast    string
	}{
		{
			name:        "single window",
			slots:       []openinghours.Slot{slot(3, "09:00", "12:00", true)},
			slotMinutes: 60,
			wantCount:   3,
			wantFirst:   "09:00",
			wantLast:    "11:00",
		},
		{
			name: "split lunch and dinner",
			slots: []openinghours.Slot{
				slot(3, "12:00", "15:00", true),
				slot(3, "18:00", "22:00", true),
			},
			slotMinutes: 60,
			wantCount:   7,
			wantFirst:   "12:00",
			wantLast:    "21:00",
		},
		{
			name: "overlapping windows are unioned, not doubled",
			slots: []openinghours.Slot{
				slot(3, "09:00", "13:00", true),
				slot(3, "12:00", "15:00", true),
			},
			slotMinutes: 60,
			wantCount:   6, // 09:00-15:00 once
			wantFirst:   "09:00",
			wantLast:    "14:00",
		},
		{
			name: "inactive and other-day slots excluded",
			slots: []openinghours.Slot{
				slot(3, "09:00", "11:00", false),
				slot(4, "09:00", "11:00", true),
			},
			slotMinutes: 30,
			wantCount:   0,
		},
		{
			name:        "duration longer than window yields nothing",
			slots:       []openinghours.Slot{slot(3, "09:00", "09:45", true)},
			slotMinutes: 60,
			wantCount:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SlotsForDate(tt.slots, wednesday, tt.slotMinutes, tt.booked)
			if tt.wantCount == 0 {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, tt.wantCount)
			assert.Equal(t, tt.wantFirst, got[0].Start)
			assert.Equal(t, tt.wantLast, got[len(got)-1].Start)
		})
	}
}

func TestSlotsForDate_BookedMarkedUnavailable(t *testing.T) {
	slots := []openinghours.Slot{slot(3, "09:00", "12:00", true)}
	booked := []Window{{Start: "10:00", End: "11:00"}}

	got := SlotsForDate(slots, wednesday, 30, booked)
	require.Len(t, got, 6)

	byStart := map[string]bool{}
	for _, s := range got {
		byStart[s.Start] = s.Available
	}
	assert.True(t, byStart["09:00"])
	assert.True(t, byStart["09:30"])
	assert.False(t, byStart["10:00"])
	assert.False(t, byStart["10:30"])
	assert.True(t, byStart["11:00"])
	assert.True(t, byStart["11:30"])
}

func TestSlotsForDate_DefaultDuration(t *testing.T) {
	slots := []openinghours.Slot{slot(3, "09:00", "10:00", true)}
	got := SlotsForDate(slots, wednesday, 0, nil)
	require.Len(t, got, 2)
	assert.Equal(t, "09:30", got[1].Start)
}

func TestWindowBookable(t *testing.T) {
	slots := []openinghours.Slot{
		slot(3, "09:00", "13:00", true),
		slot(3, "12:00", "15:00", true), // overlaps the morning window
		slot(3, "18:00", "22:00", false),
		slot(5, "08:00", "20:00", true),
	}

	assert.True(t, WindowBookable(slots, 3, "10:00", "11:00"))
	// Spans the two overlapping windows; allowed because they merge.
	assert.True(t, WindowBookable(slots, 3, "12:30", "14:30"))
	assert.True(t, WindowBookable(slots, 3, "09:00", "15:00"))
	// Inside an inactive slot only.
	assert.False(t, WindowBookable(slots, 3, "19:00", "20:00"))
	// Outside any window, wrong day, malformed input.
	assert.False(t, WindowBookable(slots, 3, "15:00", "16:00"))
	assert.False(t, WindowBookable(slots, 0, "10:00", "11:00"))
	assert.False(t, WindowBookable(slots, 3, "11:00", "10:00"))
	assert.False(t, WindowBookable(slots, 3, "ten", "11:00"))
}

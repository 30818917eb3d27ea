package openinghours

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestAddSlot(t *testing.T) {
	for day := 0; day < 7; day++ {
		s := New()
		sl, err := s.AddSlot(day)
		require.NoError(t, err)
		assert.Equal(t, 1, s.Len())
		assert.Equal(t, day, sl.DayOfWeek)
		assert.Equal(t, DefaultOpenTime, sl.OpenTime)
		assert.Equal(t, DefaultCloseTime, sl.CloseTime)
		assert.True(t, sl.IsActive)
		assert.NotEmpty(t, sl.ID)
	}
}

func TestAddSlot_InvalidDay(t *testing.T) {
	s := New()
	for _, day := range []int{-1, 7, 42} {
		_, err := s.AddSlot(day)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "day %d should be rejected", day)
		assert.Equal(t, "day_of_week", ve.Field)
	}
	assert.Equal(t, 0, s.Len())
}

func TestDefaultSchedule(t *testing.T) {
	s := Default()
	assert.Equal(t, 5, s.Len())
	for day := 1; day <= 5; day++ {
		slots := s.SlotsForDay(day)
		require.Len(t, slots, 1)
		assert.Equal(t, "09:00", slots[0].OpenTime)
		assert.Equal(t, "17:00", slots[0].CloseTime)
		assert.True(t, slots[0].IsActive)
	}
	assert.Empty(t, s.SlotsForDay(0))
	assert.Empty(t, s.SlotsForDay(6))
}

func TestSlotsForDay_SortedByOpenTime(t *testing.T) {
	s := New()
	// Insert dinner before lunch; the day view must come back lunch first.
	dinner, err := s.AddSlot(3)
	require.NoError(t, err)
	_, err = s.UpdateSlot(0, SlotPatch{OpenTime: strPtr("18:00"), CloseTime: strPtr("22:00"), Name: strPtr("Dinner")})
	require.NoError(t, err)
	_, err = s.AddSlot(3)
	require.NoError(t, err)
	_, err = s.UpdateSlot(1, SlotPatch{OpenTime: strPtr("12:00"), CloseTime: strPtr("15:00"), Name: strPtr("Lunch")})
	require.NoError(t, err)

	slots := s.SlotsForDay(3)
	require.Len(t, slots, 2)
	assert.Equal(t, "12:00", slots[0].OpenTime)
	assert.Equal(t, "18:00", slots[1].OpenTime)
	// Each entry carries its position in the full collection.
	assert.Equal(t, 1, slots[0].Index)
	assert.Equal(t, 0, slots[1].Index)
	assert.Equal(t, dinner.ID, slots[1].ID)
}

func TestUpdateSlot(t *testing.T) {
	s := New()
	_, err := s.AddSlot(2)
	require.NoError(t, err)

	got, err := s.UpdateSlot(0, SlotPatch{
		DayOfWeek: intPtr(4),
		OpenTime:  strPtr("10:30"),
		Name:      strPtr("Brunch"),
		IsActive:  boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, got.DayOfWeek)
	assert.Equal(t, "10:30", got.OpenTime)
	assert.Equal(t, "17:00", got.CloseTime) // untouched field keeps its value
	assert.Equal(t, "Brunch", got.Name)
	assert.False(t, got.IsActive)
}

func TestUpdateSlot_Errors(t *testing.T) {
	s := New()
	_, err := s.AddSlot(1)
	require.NoError(t, err)

	tests := []struct {
		name  string
		index int
		patch SlotPatch
		field string // empty means ErrSlotNotFound
	}{
		{name: "index out of range", index: 3, field: ""},
		{name: "negative index", index: -1, field: ""},
		{name: "bad day", index: 0, patch: SlotPatch{DayOfWeek: intPtr(9)}, field: "day_of_week"},
		{name: "malformed open time", index: 0, patch: SlotPatch{OpenTime: strPtr("9:00")}, field: "open_time"},
		{name: "malformed close time", index: 0, patch: SlotPatch{CloseTime: strPtr("25:00")}, field: "close_time"},
		{name: "open equals close", index: 0, patch: SlotPatch{OpenTime: strPtr("17:00")}, field: "close_time"},
		{name: "overnight window rejected", index: 0, patch: SlotPatch{OpenTime: strPtr("22:00"), CloseTime: strPtr("02:00")}, field: "close_time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.UpdateSlot(tt.index, tt.patch)
			if tt.field == "" {
				assert.ErrorIs(t, err, ErrSlotNotFound)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			// A rejected update must leave the slot untouched.
			assert.Equal(t, "09:00", s.Slots()[0].OpenTime)
		})
	}
}

func TestRemoveSlot(t *testing.T) {
	s := New()
	_, err := s.AddSlot(5)
	require.NoError(t, err)
	_, err = s.AddSlot(5)
	require.NoError(t, err)
	_, err = s.UpdateSlot(1, SlotPatch{OpenTime: strPtr("18:00"), CloseTime: strPtr("22:00")})
	require.NoError(t, err)

	require.NoError(t, s.RemoveSlot(0))
	assert.Equal(t, 1, s.Len())

	slots := s.SlotsForDay(5)
	require.Len(t, slots, 1)
	assert.Equal(t, "18:00", slots[0].OpenTime)
	assert.Equal(t, 0, slots[0].Index) // indices shifted down after removal

	assert.ErrorIs(t, s.RemoveSlot(1), ErrSlotNotFound)
	assert.ErrorIs(t, s.RemoveSlot(-1), ErrSlotNotFound)
}

func TestMutateByID(t *testing.T) {
	s := New()
	first, err := s.AddSlot(2)
	require.NoError(t, err)
	second, err := s.AddSlot(2)
	require.NoError(t, err)

	got, err := s.UpdateSlotByID(second.ID, SlotPatch{Name: strPtr("Dinner")})
	require.NoError(t, err)
	assert.Equal(t, "Dinner", got.Name)

	require.NoError(t, s.RemoveSlotByID(first.ID))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, second.ID, s.Slots()[0].ID)

	_, err = s.UpdateSlotByID("missing", SlotPatch{})
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.ErrorIs(t, s.RemoveSlotByID(""), ErrSlotNotFound)
}

func TestCopyToAllDays(t *testing.T) {
	s := New()
	_, err := s.AddSlot(3)
	require.NoError(t, err)
	_, err = s.UpdateSlot(0, SlotPatch{OpenTime: strPtr("12:00"), CloseTime: strPtr("15:00"), Name: strPtr("Lunch"), IsActive: boolPtr(false)})
	require.NoError(t, err)

	require.NoError(t, s.CopyToAllDays(0))
	require.Equal(t, 7, s.Len())

	var days []int
	for _, sl := range s.Slots() {
		days = append(days, sl.DayOfWeek)
		assert.Equal(t, "12:00", sl.OpenTime)
		assert.Equal(t, "15:00", sl.CloseTime)
		assert.Equal(t, "Lunch", sl.Name)
		assert.False(t, sl.IsActive)
		assert.NotEmpty(t, sl.ID)
	}
	sort.Ints(days)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, days, "one slot per day, source day not duplicated")
}

// Calling CopyToAllDays twice accumulates duplicate slots on the target
// days.  That is the current contract: any future deduplication must change
// this test deliberately.
func TestCopyToAllDays_NotIdempotent(t *testing.T) {
	s := New()
	_, err := s.AddSlot(1)
	require.NoError(t, err)

	require.NoError(t, s.CopyToAllDays(0))
	require.NoError(t, s.CopyToAllDays(0))
	assert.Equal(t, 13, s.Len())

	assert.Len(t, s.SlotsForDay(0), 2)
	assert.Len(t, s.SlotsForDay(1), 1)
	assert.Len(t, s.SlotsForDay(6), 2)
}

func TestCopyToAllDays_BadIndex(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.CopyToAllDays(0), ErrSlotNotFound)
}

func TestWeeklyOverview(t *testing.T) {
	s := New()
	// Wednesday: named lunch slot plus an inactive dinner slot.
	_, err := s.AddSlot(3)
	require.NoError(t, err)
	_, err = s.UpdateSlot(0, SlotPatch{OpenTime: strPtr("12:00"), CloseTime: strPtr("15:00"), Name: strPtr("Lunch")})
	require.NoError(t, err)
	_, err = s.AddSlot(3)
	require.NoError(t, err)
	_, err = s.UpdateSlot(1, SlotPatch{OpenTime: strPtr("18:00"), CloseTime: strPtr("22:00"), IsActive: boolPtr(false)})
	require.NoError(t, err)
	// Friday: plain unnamed slot.
	_, err = s.AddSlot(5)
	require.NoError(t, err)

	ov := s.WeeklyOverview()
	require.Len(t, ov, 7)

	assert.Equal(t, []string{"Lunch: 12:00 - 15:00"}, ov[3].Hours, "inactive slots are excluded")
	assert.Equal(t, []string{"09:00 - 17:00"}, ov[5].Hours)
	for _, day := range []int{0, 1, 2, 4, 6} {
		assert.Equal(t, []string{ClosedLabel}, ov[day].Hours, "day %d", day)
		assert.Equal(t, day, ov[day].DayOfWeek)
	}
}

func TestFromSlots(t *testing.T) {
	in := []Slot{
		{ID: "a", DayOfWeek: 1, OpenTime: "08:00", CloseTime: "12:00", IsActive: true},
		{DayOfWeek: 6, OpenTime: "10:00", CloseTime: "14:00", Name: "Brunch", IsActive: false},
	}
	s, err := FromSlots(in)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	// The schedule holds its own copy.
	in[0].OpenTime = "00:00"
	assert.Equal(t, "08:00", s.Slots()[0].OpenTime)

	_, err = FromSlots([]Slot{{DayOfWeek: 7, OpenTime: "09:00", CloseTime: "17:00"}})
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestFromSlots_DuplicateID(t *testing.T) {
	_, err := FromSlots([]Slot{
		{ID: "a", DayOfWeek: 1, OpenTime: "08:00", CloseTime: "12:00", IsActive: true},
		{ID: "a", DayOfWeek: 2, OpenTime: "08:00", CloseTime: "12:00", IsActive: true},
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "id", ve.Field)

	// Unpersisted slots have no ID yet; several empty IDs are fine.
	s, err := FromSlots([]Slot{
		{DayOfWeek: 1, OpenTime: "08:00", CloseTime: "12:00", IsActive: true},
		{DayOfWeek: 2, OpenTime: "08:00", CloseTime: "12:00", IsActive: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestValidTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "12:00", "23:59"}
	for _, v := range valid {
		assert.True(t, ValidTime(v), v)
	}
	invalid := []string{"", "9:30", "24:00", "12:60", "12-30", "noon", "012:30", "1200"}
	for _, v := range invalid {
		assert.False(t, ValidTime(v), v)
	}
}

func TestSlotLabel(t *testing.T) {
	assert.Equal(t, "Lunch: 12:00 - 15:00", Slot{Name: "Lunch", OpenTime: "12:00", CloseTime: "15:00"}.Label())
	assert.Equal(t, "09:00 - 17:00", Slot{OpenTime: "09:00", CloseTime: "17:00"}.Label())
}

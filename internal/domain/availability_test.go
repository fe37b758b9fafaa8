package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseWeekday(t *testing.T) {
	day, ok := ParseWeekday("Monday")
	require.True(t, ok)
	assert.Equal(t, time.Monday, day)

	day, ok = ParseWeekday("  friday ")
	require.True(t, ok)
	assert.Equal(t, time.Friday, day)

	_, ok = ParseWeekday("someday")
	assert.False(t, ok)

	_, ok = ParseWeekday("")
	assert.False(t, ok)
}

func TestSlotDurationHours(t *testing.T) {
	tests := []struct {
		name      string
		slot      AvailabilitySlot
		wantDay   time.Weekday
		wantHours float64
		wantOK    bool
	}{
		{
			name:      "valid slot",
			slot:      AvailabilitySlot{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "17:00"},
			wantDay:   time.Monday,
			wantHours: 8,
			wantOK:    true,
		},
		{
			name:      "half hour slot",
			slot:      AvailabilitySlot{DayOfWeek: "tuesday", StartTime: "10:00", EndTime: "10:30"},
			wantDay:   time.Tuesday,
			wantHours: 0.5,
			wantOK:    true,
		},
		{
			name:   "invalid day name",
			slot:   AvailabilitySlot{DayOfWeek: "Mondi", StartTime: "09:00", EndTime: "17:00"},
			wantOK: false,
		},
		{
			name:   "inverted times",
			slot:   AvailabilitySlot{DayOfWeek: "Monday", StartTime: "17:00", EndTime: "09:00"},
			wantOK: false,
		},
		{
			name:   "zero length slot",
			slot:   AvailabilitySlot{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "09:00"},
			wantOK: false,
		},
		{
			name:   "unparsable time",
			slot:   AvailabilitySlot{DayOfWeek: "Monday", StartTime: "morning", EndTime: "17:00"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, hours, ok := SlotDurationHours(tt.slot)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantDay, day)
				assert.InDelta(t, tt.wantHours, hours, 1e-9)
			}
		})
	}
}

func TestWeekdayOccurrences(t *testing.T) {
	// 2024-01-01 - понедельник, диапазон из 8 дней содержит два понедельника
	counts := WeekdayOccurrences(date(2024, time.January, 1), date(2024, time.January, 8))

	assert.Equal(t, 2, counts[time.Monday])
	assert.Equal(t, 1, counts[time.Tuesday])
	assert.Equal(t, 1, counts[time.Sunday])
}

func TestWeekdayOccurrences_SingleDay(t *testing.T) {
	counts := WeekdayOccurrences(date(2024, time.January, 1), date(2024, time.January, 1))

	assert.Equal(t, 1, counts[time.Monday])
	assert.Equal(t, 0, counts[time.Tuesday])
}

func TestWeekdayOccurrences_InvertedRange(t *testing.T) {
	counts := WeekdayOccurrences(date(2024, time.January, 8), date(2024, time.January, 1))

	for _, c := range counts {
		assert.Equal(t, 0, c)
	}
}

func TestCalendarDays(t *testing.T) {
	assert.Equal(t, 1, CalendarDays(date(2024, time.January, 1), date(2024, time.January, 1)))
	assert.Equal(t, 31, CalendarDays(date(2024, time.January, 1), date(2024, time.January, 31)))
	assert.Equal(t, 0, CalendarDays(date(2024, time.January, 2), date(2024, time.January, 1)))

	// Время внутри дня не влияет на подсчёт
	start := time.Date(2024, time.January, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 2, 0, 15, 0, 0, time.UTC)
	assert.Equal(t, 2, CalendarDays(start, end))
}

func TestAvailableHours(t *testing.T) {
	slots := []AvailabilitySlot{
		{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "17:00"},
	}

	// Один понедельник - 8 часов
	hours := AvailableHours(slots, date(2024, time.January, 1), date(2024, time.January, 1), DefaultAvailableHoursPerDay)
	assert.InDelta(t, 8.0, hours, 1e-9)

	// Две недели - два понедельника
	hours = AvailableHours(slots, date(2024, time.January, 1), date(2024, time.January, 14), DefaultAvailableHoursPerDay)
	assert.InDelta(t, 16.0, hours, 1e-9)
}

func TestAvailableHours_OverlappingSlotsDoubleCount(t *testing.T) {
	// Пересекающиеся окна одного дня не дедуплицируются
	slots := []AvailabilitySlot{
		{DayOfWeek: "Monday", StartTime: "10:00", EndTime: "12:00"},
		{DayOfWeek: "Monday", StartTime: "10:00", EndTime: "12:00"},
	}

	hours := AvailableHours(slots, date(2024, time.January, 1), date(2024, time.January, 1), DefaultAvailableHoursPerDay)
	assert.InDelta(t, 4.0, hours, 1e-9)
}

func TestAvailableHours_DefaultFallback(t *testing.T) {
	// Без валидных окон - 10 часов на календарный день
	hours := AvailableHours(nil, date(2024, time.January, 1), date(2024, time.January, 3), DefaultAvailableHoursPerDay)
	assert.InDelta(t, 30.0, hours, 1e-9)

	// Только невалидные окна - тот же дефолт
	invalid := []AvailabilitySlot{
		{DayOfWeek: "Mondi", StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: "Monday", StartTime: "17:00", EndTime: "09:00"},
	}
	hours = AvailableHours(invalid, date(2024, time.January, 1), date(2024, time.January, 3), DefaultAvailableHoursPerDay)
	assert.InDelta(t, 30.0, hours, 1e-9)
}

package domain

import (
	"strings"
	"time"
)

// weekdayNames канонические имена дней недели (сравнение без учёта регистра)
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday парсит имя дня недели без учёта регистра
func ParseWeekday(name string) (time.Weekday, bool) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	return day, ok
}

// SlotDurationHours возвращает день недели и длительность окна в часах
// Окно валидно, только если имя дня каноническое, оба времени парсятся
// и конец строго позже начала. Невалидные окна игнорируются вызывающим кодом
func SlotDurationHours(slot AvailabilitySlot) (time.Weekday, float64, bool) {
	day, ok := ParseWeekday(slot.DayOfWeek)
	if !ok {
		return 0, 0, false
	}

	startMin, err := slot.StartTime.Minutes()
	if err != nil {
		return 0, 0, false
	}
	endMin, err := slot.EndTime.Minutes()
	if err != nil {
		return 0, 0, false
	}
	if endMin <= startMin {
		return 0, 0, false
	}

	return day, float64(endMin-startMin) / 60.0, true
}

// truncateToDay обнуляет время, оставляя только дату (UTC)
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CalendarDays возвращает количество календарных дней в диапазоне включительно
func CalendarDays(rangeStart, rangeEnd time.Time) int {
	start := truncateToDay(rangeStart)
	end := truncateToDay(rangeEnd)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// WeekdayOccurrences считает, сколько раз каждый день недели встречается
// в диапазоне дат включительно (гранулярность - день)
func WeekdayOccurrences(rangeStart, rangeEnd time.Time) [7]int {
	var counts [7]int

	start := truncateToDay(rangeStart)
	end := truncateToDay(rangeEnd)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		counts[day.Weekday()]++
	}

	return counts
}

// AvailableHours вычисляет суммарные доступные часы ресурса для диапазона дат:
// сумма по валидным окнам (длительность окна × количество вхождений его дня
// недели в диапазон). Пересекающиеся окна одного дня суммируются без
// дедупликации. Если валидных окон нет, применяется дефолт
// defaultDailyHours × количество календарных дней
func AvailableHours(slots []AvailabilitySlot, rangeStart, rangeEnd time.Time, defaultDailyHours float64) float64 {
	occurrences := WeekdayOccurrences(rangeStart, rangeEnd)

	total := 0.0
	hasValidSlot := false

	for _, slot := range slots {
		day, hours, ok := SlotDurationHours(slot)
		if !ok {
			continue
		}
		hasValidSlot = true
		total += hours * float64(occurrences[day])
	}

	if !hasValidSlot {
		return defaultDailyHours * float64(CalendarDays(rangeStart, rangeEnd))
	}

	return total
}

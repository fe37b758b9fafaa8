package get_analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// resolveWindow вычисляет фактическое окно аналитики:
// дефолтный конец - now, дефолтное начало - end минус 29 дней.
// Если после подстановки начало >= конца, начало прижимается к end минус сутки
func resolveWindow(req *Request, now time.Time) (time.Time, time.Time) {
	end := now
	if req.End != nil {
		end = req.End.UTC()
	}

	start := end.AddDate(0, 0, -domain.DefaultAnalyticsRangeDays)
	if req.Start != nil {
		start = req.Start.UTC()
	}

	if !start.Before(end) {
		start = end.AddDate(0, 0, -1)
	}

	return start, end
}

// clipInterval обрезает интервал бронирования по границам окна.
// Возвращает false, если после обрезки длительность неположительна
func clipInterval(booking *domain.FacilityBooking, rangeStart, rangeEnd time.Time) (time.Time, time.Time, bool) {
	start := booking.StartTime
	if start.Before(rangeStart) {
		start = rangeStart
	}

	end := booking.EndTime
	if end.After(rangeEnd) {
		end = rangeEnd
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}

// bucketHours раскладывает обрезанный интервал по часовым корзинам суток:
// шагаем от начала интервала с шагом в час, каждая задетая корзина
// получает единицу
func bucketHours(clippedStart, clippedEnd time.Time, buckets *[24]int) {
	for cursor := clippedStart; cursor.Before(clippedEnd); cursor = cursor.Add(time.Hour) {
		buckets[cursor.UTC().Hour()]++
	}
}

// peakBucketHour возвращает час с максимальным счётчиком в формате "HH:00".
// При равенстве побеждает более ранний час. Nil, если все корзины пустые
func peakBucketHour(buckets [24]int) *string {
	bestHour := -1
	bestCount := 0

	for hour, count := range buckets {
		if count > bestCount {
			bestHour = hour
			bestCount = count
		}
	}

	if bestHour < 0 {
		return nil
	}

	formatted := fmt.Sprintf(domain.HourFormat, bestHour)
	return &formatted
}

// sortSummaries сортирует сводки по алфавиту названий для детерминированного вывода
func sortSummaries(summaries []ResourceSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].ResourceName < summaries[j].ResourceName
	})
}

// topBusiest выбирает самые загруженные ресурсы: rate > 0, по убыванию, топ N.
// Стабильная сортировка сохраняет алфавитный порядок при равных rate
func topBusiest(summaries []ResourceSummary) []ResourceSummary {
	busiest := make([]ResourceSummary, 0, len(summaries))
	for _, s := range summaries {
		if s.UtilisationRate > 0 {
			busiest = append(busiest, s)
		}
	}

	sort.SliceStable(busiest, func(i, j int) bool {
		return busiest[i].UtilisationRate > busiest[j].UtilisationRate
	})

	if len(busiest) > domain.TopBusiestResources {
		busiest = busiest[:domain.TopBusiestResources]
	}

	return busiest
}

// topIdle выбирает простаивающие ресурсы: rate < порога, по возрастанию, топ N
func topIdle(summaries []ResourceSummary) []ResourceSummary {
	idle := make([]ResourceSummary, 0, len(summaries))
	for _, s := range summaries {
		if s.UtilisationRate < domain.IdleUtilisationThreshold {
			idle = append(idle, s)
		}
	}

	sort.SliceStable(idle, func(i, j int) bool {
		return idle[i].UtilisationRate < idle[j].UtilisationRate
	})

	if len(idle) > domain.TopIdleResources {
		idle = idle[:domain.TopIdleResources]
	}

	return idle
}

// topPeakHours выбирает глобальные пиковые часы: непустые корзины
// по убыванию счётчика, топ N. При равенстве побеждает более ранний час
func topPeakHours(buckets [24]int) []PeakHour {
	peaks := make([]PeakHour, 0, len(buckets))
	for hour, count := range buckets {
		if count > 0 {
			peaks = append(peaks, PeakHour{
				Hour:  fmt.Sprintf(domain.HourFormat, hour),
				Count: count,
			})
		}
	}

	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].Count > peaks[j].Count
	})

	if len(peaks) > domain.TopPeakHours {
		peaks = peaks[:domain.TopPeakHours]
	}

	return peaks
}

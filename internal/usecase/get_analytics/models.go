package get_analytics

import "time"

// Request модель запроса аналитики загрузки
// Start и End опциональны: дефолты вычисляются в usecase
type Request struct {
	Start *time.Time // Начало окна (опционально)
	End   *time.Time // Конец окна (опционально)
}

// ResourceSummary сводка загрузки по одному ресурсу
type ResourceSummary struct {
	ResourceID          string  // ID ресурса
	ResourceName        string  // Название ресурса
	TotalBookings       int     // Количество бронирований в окне
	TotalBookedHours    float64 // Суммарные забронированные часы (после клиппинга)
	TotalAvailableHours float64 // Суммарные доступные часы для окна
	IdleHours           float64 // Часы простоя: max(available - booked, 0)
	UtilisationRate     float64 // booked / available (0 при нулевом знаменателе)
	AverageBookingHours float64 // booked / count (0 при отсутствии бронирований)
	PeakUsageHour       *string // Час пиковой нагрузки "HH:00", nil без бронирований
}

// PeakHour глобальный час пиковой нагрузки
type PeakHour struct {
	Hour  string // Час в формате "HH:00"
	Count int    // Количество попаданий бронирований в этот час
}

// Response модель ответа аналитики загрузки
type Response struct {
	RangeStart       time.Time         // Фактическое начало окна
	RangeEnd         time.Time         // Фактический конец окна
	Summaries        []ResourceSummary // Сводки по всем ресурсам (по алфавиту)
	BusiestResources []ResourceSummary // Топ самых загруженных (rate > 0, по убыванию)
	IdleResources    []ResourceSummary // Топ простаивающих (rate < порога, по возрастанию)
	PeakHours        []PeakHour        // Глобальные пиковые часы (по убыванию)
}

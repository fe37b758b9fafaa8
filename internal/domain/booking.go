package domain

import "time"

// BookingStatus represents the status of a facility booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// FacilityBooking represents a reservation of a facility resource for a time interval
type FacilityBooking struct {
	ID          string
	ResourceID  string
	Title       string
	Description *string

	// Интервал бронирования (UTC)
	// Неизменяем после создания - мутируют только Status и Metadata
	StartTime time.Time
	EndTime   time.Time

	Status BookingStatus

	CreatedBy      string
	CreatedByName  *string
	CreatedByEmail *string
	Participants   []string

	Metadata BookingMetadata

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLive returns true if the booking holds its time slot (pending or confirmed)
func (b *FacilityBooking) IsLive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *FacilityBooking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *FacilityBooking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if the booking is in a terminal state
func (b *FacilityBooking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// DurationHours возвращает длительность бронирования в часах
func (b *FacilityBooking) DurationHours() float64 {
	return b.EndTime.Sub(b.StartTime).Hours()
}

// Overlaps проверяет пересечение с интервалом [start, end)
// Строгие неравенства: граничащие интервалы не считаются пересечением
func (b *FacilityBooking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// BookingFilter фильтр для выборки бронирований
type BookingFilter struct {
	ResourceID  *string        // Фильтр по ресурсу (опционально)
	Status      *BookingStatus // Фильтр по статусу (опционально)
	StartBefore *time.Time     // Бронирования, начинающиеся до указанного момента (опционально)
	EndAfter    *time.Time     // Бронирования, заканчивающиеся после указанного момента (опционально)
	Limit       *uint64        // Ограничение количества результатов (опционально)
}

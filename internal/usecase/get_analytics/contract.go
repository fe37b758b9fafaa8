package get_analytics

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// ResourceRepository интерфейс репозитория ресурсов
type ResourceRepository interface {
	GetAll(ctx context.Context) ([]*domain.FacilityResource, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.FacilityBooking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

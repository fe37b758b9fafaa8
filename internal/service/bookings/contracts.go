package bookings

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.FacilityBooking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.FacilityBooking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

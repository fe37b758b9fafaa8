package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-FacilityService/internal/usecase/cancel_booking"
)

type CancelBookingUseCase interface {
	Execute(ctx context.Context, req *cancelBooking.Request) (*domain.FacilityBooking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

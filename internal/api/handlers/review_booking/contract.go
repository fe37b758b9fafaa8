package review_booking

import (
	"context"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	reviewBooking "github.com/m04kA/SMC-FacilityService/internal/usecase/review_booking"
)

type ReviewBookingUseCase interface {
	Execute(ctx context.Context, req *reviewBooking.Request) (*domain.FacilityBooking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

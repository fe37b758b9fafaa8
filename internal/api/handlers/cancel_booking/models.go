package cancel_booking

import (
	"github.com/m04kA/SMC-FacilityService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-FacilityService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID string, actor domain.Actor) *cancelBooking.Request {
	return &cancelBooking.Request{
		BookingID: bookingID,
		Reason:    r.Reason,
		Actor:     actor,
	}
}

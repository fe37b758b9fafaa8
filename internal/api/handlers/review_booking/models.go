package review_booking

import (
	"github.com/m04kA/SMC-FacilityService/internal/domain"
	reviewBooking "github.com/m04kA/SMC-FacilityService/internal/usecase/review_booking"
)

// ReviewBookingRequest HTTP request model
type ReviewBookingRequest struct {
	Decision string  `json:"decision"` // approve | reject
	Note     *string `json:"note,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReviewBookingRequest) ToUseCaseRequest(bookingID string, actor domain.Actor) *reviewBooking.Request {
	return &reviewBooking.Request{
		BookingID: bookingID,
		Decision:  reviewBooking.Decision(r.Decision),
		Note:      r.Note,
		Actor:     actor,
	}
}

package create_booking

import (
	"encoding/json"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	createBooking "github.com/m04kA/SMC-FacilityService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ResourceID   string                     `json:"resourceId"`
	Title        string                     `json:"title"`
	Description  *string                    `json:"description,omitempty"`
	StartTime    string                     `json:"startTime"` // ISO 8601 UTC
	EndTime      string                     `json:"endTime"`   // ISO 8601 UTC
	Participants []string                   `json:"participants,omitempty"`
	Metadata     map[string]json.RawMessage `json:"metadata,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) *createBooking.Request {
	return &createBooking.Request{
		ResourceID:   r.ResourceID,
		Title:        r.Title,
		Description:  r.Description,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Participants: r.Participants,
		Metadata:     r.Metadata,
		Actor:        actor,
	}
}

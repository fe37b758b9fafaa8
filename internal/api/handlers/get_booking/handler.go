package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	bookingsService "github.com/m04kA/SMC-FacilityService/internal/service/bookings"
)

const (
	msgBookingNotFound = "бронирование не найдено"
	msgInvalidInput    = "некорректный идентификатор бронирования"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	result, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /bookings/%s - Invalid input", bookingID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/%s - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("GET /bookings/%s - Failed to get booking: error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

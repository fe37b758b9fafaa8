package cancel_booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	bookingModels "github.com/m04kA/SMC-FacilityService/internal/service/bookings/models"
	cancelBooking "github.com/m04kA/SMC-FacilityService/internal/usecase/cancel_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgCannotCancel       = "бронирование не может быть отменено"
	msgMissingActor       = "не удалось определить пользователя"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{bookingId}/cancel - Missing actor in context")
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingActor)
		return
	}

	bookingID := mux.Vars(r)["bookingId"]

	// Тело опционально: отмена без причины допустима
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /bookings/%s/cancel - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, actor))
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/%s/cancel - Invalid input", bookingID)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/%s/cancel - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, cancelBooking.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/%s/cancel - Booking cannot be cancelled", bookingID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /bookings/%s/cancel - Failed to cancel booking: error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := bookingModels.FromDomainBooking(result)

	h.logger.Info("PATCH /bookings/%s/cancel - Booking cancelled by actor=%s", bookingID, actor.ID)
	handlers.RespondJSON(w, http.StatusOK, response)
}

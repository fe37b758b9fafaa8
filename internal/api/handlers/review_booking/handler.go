package review_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	bookingModels "github.com/m04kA/SMC-FacilityService/internal/service/bookings/models"
	reviewBooking "github.com/m04kA/SMC-FacilityService/internal/usecase/review_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные входные данные, decision должен быть approve или reject"
	msgBookingNotFound    = "бронирование не найдено"
	msgNotPending         = "бронирование не ожидает рассмотрения"
	msgUnauthorized       = "у пользователя нет прав на рассмотрение этой заявки"
	msgMissingActor       = "не удалось определить пользователя"
)

type Handler struct {
	useCase ReviewBookingUseCase
	logger  Logger
}

func NewHandler(useCase ReviewBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/review
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{bookingId}/review - Missing actor in context")
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingActor)
		return
	}

	bookingID := mux.Vars(r)["bookingId"]

	var req ReviewBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/%s/review - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, actor))
	if err != nil {
		switch {
		case errors.Is(err, reviewBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/%s/review - Invalid input: decision=%s", bookingID, req.Decision)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, reviewBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/%s/review - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, reviewBooking.ErrNotPending):
			h.logger.Warn("POST /bookings/%s/review - Booking not pending", bookingID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, reviewBooking.ErrUnauthorized):
			h.logger.Warn("POST /bookings/%s/review - Unauthorized reviewer: actor=%s", bookingID, actor.ID)
			handlers.RespondForbidden(w, msgUnauthorized)

		default:
			h.logger.Error("POST /bookings/%s/review - Failed to review booking: error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := bookingModels.FromDomainBooking(result)

	h.logger.Info("POST /bookings/%s/review - Booking reviewed: decision=%s, status=%s",
		bookingID, req.Decision, result.Status)
	handlers.RespondJSON(w, http.StatusOK, response)
}

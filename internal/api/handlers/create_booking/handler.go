package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	bookingModels "github.com/m04kA/SMC-FacilityService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-FacilityService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindow      = "некорректный временной интервал, ожидается ISO 8601 UTC и end > start"
	msgInvalidInput       = "некорректные входные данные"
	msgResourceNotFound   = "ресурс не найден"
	msgSlotConflict       = "выбранный интервал пересекается с существующим бронированием"
	msgMissingActor       = "не удалось определить пользователя"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing actor in context")
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingActor)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidWindow):
			h.logger.Warn("POST /bookings - Invalid window: resource=%s, actor=%s", req.ResourceID, actor.ID)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: resource=%s, actor=%s", req.ResourceID, actor.ID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: resource=%s", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: resource=%s, actor=%s", req.ResourceID, actor.ID)
			handlers.RespondConflict(w, msgSlotConflict)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: resource=%s, actor=%s, error=%v",
				req.ResourceID, actor.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := bookingModels.FromDomainBooking(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, resource=%s, status=%s",
		result.ID, result.ResourceID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

package upsert_resource

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	resourcesService "github.com/m04kA/SMC-FacilityService/internal/service/resources"
	"github.com/m04kA/SMC-FacilityService/internal/service/resources/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные ресурса"
	msgResourceNotFound   = "ресурс не найден"
)

type Handler struct {
	service ResourcesService
	logger  Logger
}

func NewHandler(service ResourcesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/resources
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /resources - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, resourcesService.ErrInvalidInput):
			h.logger.Warn("PUT /resources - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, resourcesService.ErrResourceNotFound):
			h.logger.Warn("PUT /resources - Resource not found: id=%v", req.ID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		default:
			h.logger.Error("PUT /resources - Failed to upsert resource: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if req.ID == nil {
		status = http.StatusCreated
	}

	h.logger.Info("PUT /resources - Resource upserted: id=%s, name=%s", result.ID, result.Name)
	handlers.RespondJSON(w, status, result)
}

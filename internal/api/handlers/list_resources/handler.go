package list_resources

import (
	"net/http"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
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

// Handle GET /api/v1/resources
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /resources - Failed to list resources: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

package get_analytics

import (
	"net/http"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
)

const (
	msgInvalidQuery = "некорректные границы окна, ожидается ISO 8601 UTC"
)

type Handler struct {
	useCase GetAnalyticsUseCase
	logger  Logger
}

func NewHandler(useCase GetAnalyticsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/analytics/utilisation
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ParseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /analytics/utilisation - Invalid query parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /analytics/utilisation - Failed to compute analytics: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

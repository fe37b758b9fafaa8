package create_booking

import (
	"encoding/json"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

// Request модель запроса на создание бронирования
// StartTime/EndTime - ISO-8601 UTC строки, парсятся и валидируются usecase-ом
type Request struct {
	ResourceID   string                     // ID ресурса
	Title        string                     // Название бронирования (непустое после trim)
	Description  *string                    // Описание (опционально)
	StartTime    string                     // Начало интервала (RFC3339)
	EndTime      string                     // Конец интервала (RFC3339)
	Participants []string                   // Участники (опционально)
	Metadata     map[string]json.RawMessage // Произвольные метаданные вызывающей стороны
	Actor        domain.Actor               // Аутентифицированный актор
}

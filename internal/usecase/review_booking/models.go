package review_booking

import "github.com/m04kA/SMC-FacilityService/internal/domain"

// Decision решение согласующего
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Request модель запроса на рассмотрение бронирования
type Request struct {
	BookingID string       // ID бронирования
	Decision  Decision     // approve или reject
	Note      *string      // Комментарий согласующего (опционально)
	Actor     domain.Actor // Аутентифицированный актор
}

package cancel_booking

import "github.com/m04kA/SMC-FacilityService/internal/domain"

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID string       // ID бронирования
	Reason    *string      // Причина отмены (опционально)
	Actor     domain.Actor // Аутентифицированный актор
}

// DefaultCancellationReason причина отмены, если вызывающая сторона её не указала
const DefaultCancellationReason = "Cancelled by requester"

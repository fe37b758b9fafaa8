package review_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("review_booking: booking not found")

	// ErrNotPending возвращается при попытке рассмотреть бронирование не в статусе pending
	ErrNotPending = errors.New("review_booking: booking is not pending")

	// ErrUnauthorized возвращается, когда актор не входит в список согласующих
	ErrUnauthorized = errors.New("review_booking: actor is not an authorised approver")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("review_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("review_booking: internal error")
)

package create_booking

import "errors"

var (
	// ErrInvalidWindow возвращается при нечитаемом или инвертированном интервале бронирования
	ErrInvalidWindow = errors.New("create_booking: invalid booking window")

	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("create_booking: resource not found")

	// ErrSlotConflict возвращается, когда интервал пересекается с живым бронированием
	ErrSlotConflict = errors.New("create_booking: slot conflicts with an existing booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

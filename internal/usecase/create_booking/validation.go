package create_booking

import (
	"fmt"
	"strings"
	"time"
)

// validateRequest валидирует входные данные запроса
// Возвращает распарсенный интервал бронирования
func validateRequest(req *Request) (start, end time.Time, err error) {
	if strings.TrimSpace(req.ResourceID) == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: resourceId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Title) == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Actor.ID) == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: actor id is required", ErrInvalidInput)
	}

	start, end, err = parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, end, nil
}

// parseWindow парсит и проверяет интервал бронирования
// Оба времени должны быть валидными RFC3339, конец строго позже начала
func parseWindow(startStr, endStr string) (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unparsable startTime %q", ErrInvalidWindow, startStr)
	}

	end, err = time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unparsable endTime %q", ErrInvalidWindow, endStr)
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidWindow)
	}

	return start.UTC(), end.UTC(), nil
}

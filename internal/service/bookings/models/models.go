package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований с фильтрацией
type ListBookingsRequest struct {
	ResourceID  *string    `json:"resourceId,omitempty"`  // Фильтр по ресурсу (опционально)
	Status      *string    `json:"status,omitempty"`      // Фильтр по статусу (опционально)
	StartBefore *time.Time `json:"startBefore,omitempty"` // Начинающиеся до момента (опционально)
	EndAfter    *time.Time `json:"endAfter,omitempty"`    // Заканчивающиеся после момента (опционально)
	Limit       *uint64    `json:"limit,omitempty"`       // Ограничение количества (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		ResourceID:  r.ResourceID,
		StartBefore: r.StartBefore,
		EndAfter:    r.EndAfter,
		Limit:       r.Limit,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          string  `json:"id"`
	ResourceID  string  `json:"resourceId"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	StartTime   string  `json:"startTime"` // ISO 8601 UTC
	EndTime     string  `json:"endTime"`   // ISO 8601 UTC
	Status      string  `json:"status"`

	CreatedBy      string   `json:"createdBy"`
	CreatedByName  *string  `json:"createdByName,omitempty"`
	CreatedByEmail *string  `json:"createdByEmail,omitempty"`
	Participants   []string `json:"participants,omitempty"`

	Metadata *domain.BookingMetadata `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.FacilityBooking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:             b.ID,
		ResourceID:     b.ResourceID,
		Title:          b.Title,
		Description:    b.Description,
		StartTime:      b.StartTime.UTC().Format(time.RFC3339),
		EndTime:        b.EndTime.UTC().Format(time.RFC3339),
		Status:         string(b.Status),
		CreatedBy:      b.CreatedBy,
		CreatedByName:  b.CreatedByName,
		CreatedByEmail: b.CreatedByEmail,
		Participants:   b.Participants,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	if !b.Metadata.IsEmpty() {
		metadata := b.Metadata
		resp.Metadata = &metadata
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.FacilityBooking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusCompleted,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

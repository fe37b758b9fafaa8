package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bookingRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FacilityService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с гибкой фильтрацией
// Поддерживает фильтры по ресурсу, статусу и границам интервала
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings, resource=%v, status=%v", req.ResourceID, req.Status)

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/booking"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования
// Отмена идемпотентна: повторная отмена возвращает запись без изменений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.FacilityBooking, error) {
	uc.logger.Info("CancelBooking: booking=%s, actor=%s", req.BookingID, req.Actor.ID)

	if strings.TrimSpace(req.BookingID) == "" {
		return nil, fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Actor.ID) == "" {
		return nil, fmt.Errorf("%w: actor id is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var result *domain.FacilityBooking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Уже отменено - возвращаем как есть, без перезаписи метаданных
		if booking.IsCancelled() {
			uc.logger.Info("CancelBooking: booking id=%s already cancelled, no-op", req.BookingID)
			result = booking
			return nil
		}

		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%s cannot be cancelled, status=%s",
				req.BookingID, booking.Status)
			return ErrCannotCancel
		}

		reason := DefaultCancellationReason
		if req.Reason != nil && strings.TrimSpace(*req.Reason) != "" {
			reason = *req.Reason
		}

		booking.Status = domain.StatusCancelled
		booking.Metadata.Cancellation = &domain.CancellationRecord{
			Reason:      reason,
			CancelledBy: req.Actor.ID,
			CancelledAt: now,
		}

		updated, err := uc.bookingRepo.Update(txCtx, booking)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to update booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%s cancelled", result.ID)
	return result, nil
}

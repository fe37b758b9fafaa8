package review_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/booking"
)

// UseCase use case для рассмотрения бронирования согласующим
type UseCase struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case рассмотрения бронирования
// Чтение и запись выполняются в одной транзакции - конкурентные согласующие
// не могут затереть решения друг друга
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.FacilityBooking, error) {
	uc.logger.Info("ReviewBooking: booking=%s, decision=%s, actor=%s", req.BookingID, req.Decision, req.Actor.ID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReviewBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.FacilityBooking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Получаем бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ReviewBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ReviewBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3. Рассматривать можно только pending бронирования
		if booking.Status != domain.StatusPending {
			uc.logger.Warn("ReviewBooking: booking id=%s is not pending, status=%s", req.BookingID, booking.Status)
			return ErrNotPending
		}

		// 4. Перечитываем актуальную политику ресурса и авторизуем актора
		res, err := uc.resourceRepo.GetByID(txCtx, booking.ResourceID)
		if err != nil {
			uc.logger.Error("ReviewBooking: failed to get resource id=%s: %v", booking.ResourceID, err)
			return fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
		}

		if res.ApprovalPolicy != nil && !res.ApprovalPolicy.CanReview(req.Actor.NormalizedEmail()) {
			uc.logger.Warn("ReviewBooking: actor=%s is not an approver for resource id=%s",
				req.Actor.ID, booking.ResourceID)
			return ErrUnauthorized
		}

		// 5. Записываем решение в историю и переводим статус
		applyDecision(booking, res.ApprovalPolicy, req, now)

		updated, err := uc.bookingRepo.Update(txCtx, booking)
		if err != nil {
			uc.logger.Error("ReviewBooking: failed to update booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ReviewBooking: booking id=%s reviewed, status=%s", result.ID, result.Status)
	return result, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BookingID) == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Actor.ID) == "" {
		return fmt.Errorf("%w: actor id is required", ErrInvalidInput)
	}
	if req.Decision != DecisionApprove && req.Decision != DecisionReject {
		return fmt.Errorf("%w: decision must be %q or %q", ErrInvalidInput, DecisionApprove, DecisionReject)
	}
	return nil
}

// applyDecision записывает решение согласующего в метаданные и статус бронирования
func applyDecision(booking *domain.FacilityBooking, policy *domain.ApprovalPolicy, req *Request, now time.Time) {
	// Снимок согласования мог отсутствовать, если политику добавили
	// к ресурсу уже после создания бронирования
	if booking.Metadata.Approval == nil {
		approvers := []string{}
		if policy != nil {
			approvers = policy.ApproverEmails
		}
		booking.Metadata.Approval = &domain.ApprovalState{
			Status:      domain.ApprovalStatusPending,
			RequestedBy: booking.CreatedBy,
			RequestedAt: booking.CreatedAt,
			Approvers:   approvers,
			History:     []domain.ApprovalDecision{},
		}
	}

	decision := domain.DecisionApproved
	if req.Decision == DecisionReject {
		decision = domain.DecisionRejected
	}

	booking.Metadata.Approval.History = append(booking.Metadata.Approval.History, domain.ApprovalDecision{
		Decision:   decision,
		DecidedAt:  now,
		ActorID:    req.Actor.ID,
		ActorName:  req.Actor.Name,
		ActorEmail: req.Actor.Email,
		Note:       req.Note,
	})

	if req.Decision == DecisionApprove {
		booking.Metadata.Approval.Status = domain.ApprovalStatusApproved
		booking.Status = domain.StatusConfirmed
		return
	}

	booking.Metadata.Approval.Status = domain.ApprovalStatusRejected
	booking.Status = domain.StatusCancelled

	reason := domain.DefaultRejectionReason
	if req.Note != nil && strings.TrimSpace(*req.Note) != "" {
		reason = *req.Note
	}
	booking.Metadata.Cancellation = &domain.CancellationRecord{
		Reason:      reason,
		CancelledBy: req.Actor.ID,
		CancelledAt: now,
	}
}

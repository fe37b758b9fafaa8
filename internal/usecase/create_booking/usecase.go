package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-FacilityService/pkg/ptr"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции -
// два конкурентных запроса на пересекающиеся интервалы одного ресурса
// не могут быть приняты оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.FacilityBooking, error) {
	uc.logger.Info("CreateBooking: resource=%s, actor=%s, window=[%s, %s]",
		req.ResourceID, req.Actor.ID, req.StartTime, req.EndTime)

	// 1. Валидация входных данных и интервала
	start, end, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.FacilityBooking

	// 2. Все операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем ресурс и его политику согласования
		res, err := uc.resourceRepo.GetByID(txCtx, req.ResourceID)
		if err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				uc.logger.Warn("CreateBooking: resource id=%s not found", req.ResourceID)
				return ErrResourceNotFound
			}
			uc.logger.Error("CreateBooking: failed to get resource id=%s: %v", req.ResourceID, err)
			return fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
		}

		// 2.2. Проверяем пересечения с живыми бронированиями (pending, confirmed)
		// FOR UPDATE блокирует найденные строки до конца транзакции
		overlapping, err := uc.bookingRepo.FindOverlapping(txCtx, req.ResourceID, start, end, domain.LiveStatuses)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check overlaps for resource id=%s: %v", req.ResourceID, err)
			return fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: slot conflict on resource id=%s, %d overlapping bookings",
				req.ResourceID, len(overlapping))
			return ErrSlotConflict
		}

		// 2.3. Применяем политику согласования
		status, approval := uc.resolveApproval(res, req, start, end, now)

		booking := &domain.FacilityBooking{
			ResourceID:     req.ResourceID,
			Title:          req.Title,
			Description:    req.Description,
			StartTime:      start,
			EndTime:        end,
			Status:         status,
			CreatedBy:      req.Actor.ID,
			CreatedByName:  req.Actor.Name,
			CreatedByEmail: req.Actor.Email,
			Participants:   req.Participants,
			Metadata: domain.BookingMetadata{
				Approval: approval,
				Extra:    req.Metadata,
			},
		}

		// 2.4. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, status=%s", result.ID, result.Status)
	return result, nil
}

// resolveApproval определяет итоговый статус бронирования и снимок согласования
// Снимок записывается всегда, когда у ресурса есть политика - даже если
// согласование не требуется
func (uc *UseCase) resolveApproval(
	res *domain.FacilityResource,
	req *Request,
	start, end time.Time,
	now time.Time,
) (domain.BookingStatus, *domain.ApprovalState) {
	policy := res.ApprovalPolicy

	if policy == nil {
		return domain.StatusConfirmed, nil
	}

	approval := &domain.ApprovalState{
		Status:      domain.ApprovalStatusApproved,
		RequestedBy: req.Actor.ID,
		RequestedAt: now,
		Approvers:   policy.ApproverEmails,
		History:     []domain.ApprovalDecision{},
	}

	if !policy.RequiresApproval {
		return domain.StatusConfirmed, approval
	}

	durationHours := end.Sub(start).Hours()
	actorEmail := req.Actor.NormalizedEmail()

	if policy.AllowsAutoApprove(durationHours, actorEmail) {
		approval.AutoApproved = true
		approval.History = append(approval.History, domain.ApprovalDecision{
			Decision:   domain.DecisionAutoApproved,
			DecidedAt:  now,
			ActorID:    req.Actor.ID,
			ActorName:  req.Actor.Name,
			ActorEmail: req.Actor.Email,
			Reason:     ptr.Ptr(autoApproveReason(policy, durationHours, actorEmail)),
		})
		uc.logger.Info("CreateBooking: auto-approved for resource id=%s, duration=%.2fh", res.ID, durationHours)
		return domain.StatusConfirmed, approval
	}

	approval.Status = domain.ApprovalStatusPending
	uc.logger.Info("CreateBooking: pending approval for resource id=%s, duration=%.2fh", res.ID, durationHours)
	return domain.StatusPending, approval
}

// autoApproveReason формирует причину автоподтверждения для истории решений
func autoApproveReason(policy *domain.ApprovalPolicy, durationHours float64, email string) string {
	if email != "" {
		for _, trusted := range policy.AutoApproveEmails {
			if trusted == email {
				return "requester email is in the auto-approve list"
			}
		}
	}
	return fmt.Sprintf("duration %.2fh is within the auto-approve threshold of %.2fh",
		durationHours, *policy.AutoApproveDurationHours)
}

package get_analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/pkg/ptr"
)

// resourceAccumulator промежуточные счётчики по одному ресурсу
type resourceAccumulator struct {
	totalBookings int
	bookedHours   float64
	buckets       [24]int
}

// UseCase use case аналитики загрузки ресурсов.
// Читает снапшот данных без блокировок: допускается небольшое отставание
type UseCase struct {
	resourceRepo      ResourceRepository
	bookingRepo       BookingRepository
	timeProvider      TimeProvider
	defaultDailyHours float64
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
// defaultDailyHours - доступные часы в день для ресурсов без валидных окон
func NewUseCase(
	resourceRepo ResourceRepository,
	bookingRepo BookingRepository,
	defaultDailyHours float64,
	logger Logger,
) *UseCase {
	if defaultDailyHours <= 0 {
		defaultDailyHours = domain.DefaultAvailableHoursPerDay
	}

	return &UseCase{
		resourceRepo:      resourceRepo,
		bookingRepo:       bookingRepo,
		timeProvider:      &RealTimeProvider{},
		defaultDailyHours: defaultDailyHours,
		logger:            logger,
	}
}

// Execute выполняет расчёт аналитики загрузки для окна запроса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	rangeStart, rangeEnd := resolveWindow(req, uc.timeProvider.Now())

	uc.logger.Info("GetAnalytics: range %s - %s",
		rangeStart.Format(domain.DateFormat), rangeEnd.Format(domain.DateFormat))

	resources, err := uc.resourceRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("GetAnalytics: failed to load resources: %v", err)
		return nil, fmt.Errorf("%w: failed to load resources: %v", ErrInternal, err)
	}

	response := &Response{
		RangeStart:       rangeStart,
		RangeEnd:         rangeEnd,
		Summaries:        []ResourceSummary{},
		BusiestResources: []ResourceSummary{},
		IdleResources:    []ResourceSummary{},
		PeakHours:        []PeakHour{},
	}

	if len(resources) == 0 {
		return response, nil
	}

	bookings, err := uc.loadUtilisedBookings(ctx, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	accumulators := make(map[string]*resourceAccumulator, len(resources))
	var globalBuckets [24]int

	for _, booking := range bookings {
		clippedStart, clippedEnd, ok := clipInterval(booking, rangeStart, rangeEnd)
		if !ok {
			continue
		}

		acc := accumulators[booking.ResourceID]
		if acc == nil {
			acc = &resourceAccumulator{}
			accumulators[booking.ResourceID] = acc
		}

		acc.totalBookings++
		acc.bookedHours += clippedEnd.Sub(clippedStart).Hours()

		bucketHours(clippedStart, clippedEnd, &acc.buckets)
		bucketHours(clippedStart, clippedEnd, &globalBuckets)
	}

	summaries := make([]ResourceSummary, 0, len(resources))
	for _, res := range resources {
		acc := accumulators[res.ID]
		if acc == nil {
			acc = &resourceAccumulator{}
		}
		summaries = append(summaries, uc.buildSummary(res, acc, rangeStart, rangeEnd))
	}

	sortSummaries(summaries)

	response.Summaries = summaries
	response.BusiestResources = topBusiest(summaries)
	response.IdleResources = topIdle(summaries)
	response.PeakHours = topPeakHours(globalBuckets)

	return response, nil
}

// loadUtilisedBookings загружает бронирования, учитываемые аналитикой:
// статус confirmed или completed, интервал пересекает окно
func (uc *UseCase) loadUtilisedBookings(ctx context.Context, rangeStart, rangeEnd time.Time) ([]*domain.FacilityBooking, error) {
	var bookings []*domain.FacilityBooking

	for _, status := range domain.UtilisedStatuses {
		filter := domain.BookingFilter{
			Status:      ptr.Ptr(status),
			StartBefore: ptr.Ptr(rangeEnd),
			EndAfter:    ptr.Ptr(rangeStart),
		}

		chunk, err := uc.bookingRepo.GetWithFilter(ctx, filter)
		if err != nil {
			uc.logger.Error("GetAnalytics: failed to load bookings, status=%s: %v", status, err)
			return nil, fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
		}

		bookings = append(bookings, chunk...)
	}

	return bookings, nil
}

// buildSummary собирает сводку по ресурсу из накопленных счётчиков
func (uc *UseCase) buildSummary(res *domain.FacilityResource, acc *resourceAccumulator, rangeStart, rangeEnd time.Time) ResourceSummary {
	availableHours := domain.AvailableHours(res.Availability, rangeStart, rangeEnd, uc.defaultDailyHours)

	idleHours := availableHours - acc.bookedHours
	if idleHours < 0 {
		idleHours = 0
	}

	rate := 0.0
	if availableHours > 0 {
		rate = acc.bookedHours / availableHours
	}

	avgHours := 0.0
	if acc.totalBookings > 0 {
		avgHours = acc.bookedHours / float64(acc.totalBookings)
	}

	return ResourceSummary{
		ResourceID:          res.ID,
		ResourceName:        res.Name,
		TotalBookings:       acc.totalBookings,
		TotalBookedHours:    acc.bookedHours,
		TotalAvailableHours: availableHours,
		IdleHours:           idleHours,
		UtilisationRate:     rate,
		AverageBookingHours: avgHours,
		PeakUsageHour:       peakBucketHour(acc.buckets),
	}
}

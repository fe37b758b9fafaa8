package get_analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type fakeResourceRepo struct {
	resources []*domain.FacilityResource
}

func (r *fakeResourceRepo) GetAll(_ context.Context) ([]*domain.FacilityResource, error) {
	return r.resources, nil
}

type fakeBookingRepo struct {
	bookings []*domain.FacilityBooking
}

// GetWithFilter применяет фильтр так же, как SQL-репозиторий:
// статус, startBefore/endAfter по интервалу бронирования
func (r *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingFilter) ([]*domain.FacilityBooking, error) {
	var out []*domain.FacilityBooking
	for _, b := range r.bookings {
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.StartBefore != nil && !b.StartTime.Before(*filter.StartBefore) {
			continue
		}
		if filter.EndAfter != nil && !b.EndTime.After(*filter.EndAfter) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// Понедельник 2024-04-01
var mondayStart = time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

func mondayRoomA() *domain.FacilityResource {
	return &domain.FacilityResource{
		ID:   "room-a",
		Type: domain.TypeMeetingRoom,
		Name: "Room A",
		Availability: []domain.AvailabilitySlot{
			{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "17:00"},
		},
	}
}

func confirmedBooking(id, resourceID string, start, end time.Time) *domain.FacilityBooking {
	return &domain.FacilityBooking{
		ID:         id,
		ResourceID: resourceID,
		Title:      "Booking " + id,
		StartTime:  start,
		EndTime:    end,
		Status:     domain.StatusConfirmed,
		CreatedBy:  "u-1",
	}
}

func newTestUseCase(resources []*domain.FacilityResource, bookings []*domain.FacilityBooking) *UseCase {
	uc := NewUseCase(
		&fakeResourceRepo{resources: resources},
		&fakeBookingRepo{bookings: bookings},
		domain.DefaultAvailableHoursPerDay,
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: mondayStart.AddDate(0, 0, 30)}
	return uc
}

func TestResolveWindow(t *testing.T) {
	now := time.Date(2024, time.April, 30, 12, 0, 0, 0, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		start, end := resolveWindow(&Request{}, now)
		assert.True(t, end.Equal(now))
		assert.True(t, start.Equal(now.AddDate(0, 0, -29)))
	})

	t.Run("explicit window", func(t *testing.T) {
		reqStart := now.AddDate(0, 0, -7)
		reqEnd := now.AddDate(0, 0, -1)
		start, end := resolveWindow(&Request{Start: &reqStart, End: &reqEnd}, now)
		assert.True(t, start.Equal(reqStart))
		assert.True(t, end.Equal(reqEnd))
	})

	t.Run("inverted window clamps start to end minus one day", func(t *testing.T) {
		reqStart := now.Add(time.Hour)
		start, end := resolveWindow(&Request{Start: &reqStart}, now)
		assert.True(t, end.Equal(now))
		assert.True(t, start.Equal(now.AddDate(0, 0, -1)))
	})
}

func TestExecute_EmptyOverview(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Empty(t, resp.Summaries)
	assert.Empty(t, resp.BusiestResources)
	assert.Empty(t, resp.IdleResources)
	assert.Empty(t, resp.PeakHours)
	assert.True(t, resp.RangeStart.Before(resp.RangeEnd))
}

func TestExecute_RoomAScenario(t *testing.T) {
	// Room A: понедельник 09:00-17:00 (8 часов), окно - единственный понедельник,
	// одно подтверждённое бронирование 10:00-12:00
	resources := []*domain.FacilityResource{mondayRoomA()}
	bookings := []*domain.FacilityBooking{
		confirmedBooking("b-1", "room-a",
			mondayStart.Add(10*time.Hour), mondayStart.Add(12*time.Hour)),
	}

	uc := newTestUseCase(resources, bookings)

	end := mondayStart.Add(24 * time.Hour)
	resp, err := uc.Execute(context.Background(), &Request{
		Start: &mondayStart,
		End:   &end,
	})
	require.NoError(t, err)

	require.Len(t, resp.Summaries, 1)
	summary := resp.Summaries[0]

	assert.Equal(t, "room-a", summary.ResourceID)
	assert.Equal(t, 1, summary.TotalBookings)
	assert.InDelta(t, 2.0, summary.TotalBookedHours, 1e-9)
	assert.InDelta(t, 8.0, summary.TotalAvailableHours, 1e-9)
	assert.InDelta(t, 6.0, summary.IdleHours, 1e-9)
	assert.InDelta(t, 0.25, summary.UtilisationRate, 1e-9)
	assert.InDelta(t, 2.0, summary.AverageBookingHours, 1e-9)
	require.NotNil(t, summary.PeakUsageHour)
	assert.Equal(t, "10:00", *summary.PeakUsageHour)

	// rate 0.25 > 0 и выше порога простоя 0.2
	require.Len(t, resp.BusiestResources, 1)
	assert.Empty(t, resp.IdleResources)

	require.Len(t, resp.PeakHours, 2)
	assert.Equal(t, "10:00", resp.PeakHours[0].Hour)
	assert.Equal(t, 1, resp.PeakHours[0].Count)
	assert.Equal(t, "11:00", resp.PeakHours[1].Hour)
}

func TestExecute_ConservationWithoutBookings(t *testing.T) {
	resources := []*domain.FacilityResource{mondayRoomA()}
	uc := newTestUseCase(resources, nil)

	end := mondayStart.Add(24 * time.Hour)
	resp, err := uc.Execute(context.Background(), &Request{Start: &mondayStart, End: &end})
	require.NoError(t, err)

	require.Len(t, resp.Summaries, 1)
	summary := resp.Summaries[0]

	assert.Zero(t, summary.TotalBookings)
	assert.Zero(t, summary.TotalBookedHours)
	assert.InDelta(t, summary.TotalAvailableHours, summary.IdleHours, 1e-9)
	assert.Zero(t, summary.UtilisationRate)
	assert.Zero(t, summary.AverageBookingHours)
	assert.Nil(t, summary.PeakUsageHour)

	assert.Empty(t, resp.BusiestResources)
	require.Len(t, resp.IdleResources, 1)
	assert.Empty(t, resp.PeakHours)
}

func TestExecute_ClippingOutsideRange(t *testing.T) {
	resources := []*domain.FacilityResource{mondayRoomA()}
	// Бронирование начинается за 2 часа до окна и заканчивается через час после его начала
	bookings := []*domain.FacilityBooking{
		confirmedBooking("b-1", "room-a",
			mondayStart.Add(-2*time.Hour), mondayStart.Add(time.Hour)),
	}

	uc := newTestUseCase(resources, bookings)

	end := mondayStart.Add(24 * time.Hour)
	resp, err := uc.Execute(context.Background(), &Request{Start: &mondayStart, End: &end})
	require.NoError(t, err)

	require.Len(t, resp.Summaries, 1)
	assert.InDelta(t, 1.0, resp.Summaries[0].TotalBookedHours, 1e-9)
	require.NotNil(t, resp.Summaries[0].PeakUsageHour)
	assert.Equal(t, "00:00", *resp.Summaries[0].PeakUsageHour)
}

func TestExecute_PendingAndCancelledIgnored(t *testing.T) {
	resources := []*domain.FacilityResource{mondayRoomA()}

	pending := confirmedBooking("b-1", "room-a",
		mondayStart.Add(10*time.Hour), mondayStart.Add(12*time.Hour))
	pending.Status = domain.StatusPending

	cancelled := confirmedBooking("b-2", "room-a",
		mondayStart.Add(13*time.Hour), mondayStart.Add(14*time.Hour))
	cancelled.Status = domain.StatusCancelled

	completed := confirmedBooking("b-3", "room-a",
		mondayStart.Add(15*time.Hour), mondayStart.Add(16*time.Hour))
	completed.Status = domain.StatusCompleted

	uc := newTestUseCase(resources, []*domain.FacilityBooking{pending, cancelled, completed})

	end := mondayStart.Add(24 * time.Hour)
	resp, err := uc.Execute(context.Background(), &Request{Start: &mondayStart, End: &end})
	require.NoError(t, err)

	require.Len(t, resp.Summaries, 1)
	assert.Equal(t, 1, resp.Summaries[0].TotalBookings)
	assert.InDelta(t, 1.0, resp.Summaries[0].TotalBookedHours, 1e-9)
}

func TestExecute_TopListsAndOrdering(t *testing.T) {
	// Пять ресурсов с разной загрузкой на одном понедельнике
	makeRes := func(id, name string) *domain.FacilityResource {
		res := mondayRoomA()
		res.ID = id
		res.Name = name
		return res
	}

	resources := []*domain.FacilityResource{
		makeRes("r-e", "Echo"),
		makeRes("r-a", "Alpha"),
		makeRes("r-c", "Charlie"),
		makeRes("r-b", "Bravo"),
		makeRes("r-d", "Delta"),
	}

	hoursBooked := map[string]int{
		"r-a": 6, // rate 0.75
		"r-b": 4, // rate 0.5
		"r-c": 2, // rate 0.25
		"r-d": 1, // rate 0.125 - простаивает
		"r-e": 0, // rate 0 - простаивает
	}

	var bookings []*domain.FacilityBooking
	for id, hours := range hoursBooked {
		if hours == 0 {
			continue
		}
		bookings = append(bookings, confirmedBooking("b-"+id, id,
			mondayStart.Add(9*time.Hour), mondayStart.Add(time.Duration(9+hours)*time.Hour)))
	}

	uc := newTestUseCase(resources, bookings)

	end := mondayStart.Add(24 * time.Hour)
	resp, err := uc.Execute(context.Background(), &Request{Start: &mondayStart, End: &end})
	require.NoError(t, err)

	// Сводки по алфавиту названий
	names := make([]string, 0, len(resp.Summaries))
	for _, s := range resp.Summaries {
		names = append(names, s.ResourceName)
	}
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"}, names)

	// Топ-3 загруженных по убыванию rate
	require.Len(t, resp.BusiestResources, 3)
	assert.Equal(t, "Alpha", resp.BusiestResources[0].ResourceName)
	assert.Equal(t, "Bravo", resp.BusiestResources[1].ResourceName)
	assert.Equal(t, "Charlie", resp.BusiestResources[2].ResourceName)

	// Простаивающие (rate < 0.2) по возрастанию rate
	require.Len(t, resp.IdleResources, 2)
	assert.Equal(t, "Echo", resp.IdleResources[0].ResourceName)
	assert.Equal(t, "Delta", resp.IdleResources[1].ResourceName)

	// Глобальные пиковые часы: 09:00 задет всеми четырьмя бронированиями
	require.NotEmpty(t, resp.PeakHours)
	assert.Equal(t, "09:00", resp.PeakHours[0].Hour)
	assert.Equal(t, 4, resp.PeakHours[0].Count)
	assert.LessOrEqual(t, len(resp.PeakHours), domain.TopPeakHours)
}

func TestExecute_DefaultDailyHoursFallback(t *testing.T) {
	res := mondayRoomA()
	res.Availability = nil

	uc := newTestUseCase([]*domain.FacilityResource{res}, nil)

	// Окно задевает три календарных дня: fallback 10 часов в день
	end := mondayStart.Add(48 * time.Hour)
	resp, err := uc.Execute(context.Background(), &Request{Start: &mondayStart, End: &end})
	require.NoError(t, err)

	require.Len(t, resp.Summaries, 1)
	assert.InDelta(t, 30.0, resp.Summaries[0].TotalAvailableHours, 1e-9)
}

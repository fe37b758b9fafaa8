package cancel_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FacilityService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type fakeTxManager struct{ mu sync.Mutex }

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeBookingRepo struct {
	bookings map[string]*domain.FacilityBooking
	updates  int
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.FacilityBooking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *domain.FacilityBooking) (*domain.FacilityBooking, error) {
	if _, ok := r.bookings[b.ID]; !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	r.updates++
	copied := *b
	r.bookings[b.ID] = &copied
	return &copied, nil
}

var cancelTime = time.Date(2024, time.April, 1, 15, 0, 0, 0, time.UTC)

func newTestUseCase(status domain.BookingStatus) (*UseCase, *fakeBookingRepo) {
	repo := &fakeBookingRepo{bookings: map[string]*domain.FacilityBooking{
		"b-1": {
			ID:         "b-1",
			ResourceID: "r-1",
			Title:      "Demo",
			StartTime:  time.Date(2024, time.April, 2, 10, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2024, time.April, 2, 11, 0, 0, 0, time.UTC),
			Status:     status,
			CreatedBy:  "u-1",
		},
	}}

	uc := NewUseCase(repo, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: cancelTime}

	return uc, repo
}

func TestExecute_NotFound(t *testing.T) {
	uc, _ := newTestUseCase(domain.StatusConfirmed)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: "missing",
		Actor:     domain.Actor{ID: "u-1"},
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_CancelConfirmed(t *testing.T) {
	uc, _ := newTestUseCase(domain.StatusConfirmed)

	reason := "meeting moved"
	booking, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Reason:    &reason,
		Actor:     domain.Actor{ID: "u-1"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, booking.Status)
	require.NotNil(t, booking.Metadata.Cancellation)
	assert.Equal(t, reason, booking.Metadata.Cancellation.Reason)
	assert.Equal(t, "u-1", booking.Metadata.Cancellation.CancelledBy)
	assert.True(t, booking.Metadata.Cancellation.CancelledAt.Equal(cancelTime))
}

func TestExecute_CancelPendingWithDefaultReason(t *testing.T) {
	uc, _ := newTestUseCase(domain.StatusPending)

	booking, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Actor:     domain.Actor{ID: "u-1"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, booking.Status)
	assert.Equal(t, DefaultCancellationReason, booking.Metadata.Cancellation.Reason)
}

func TestExecute_CompletedCannotBeCancelled(t *testing.T) {
	uc, _ := newTestUseCase(domain.StatusCompleted)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Actor:     domain.Actor{ID: "u-1"},
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestExecute_IdempotentCancel(t *testing.T) {
	uc, repo := newTestUseCase(domain.StatusConfirmed)

	first, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Reason:    ptr.Ptr("first reason"),
		Actor:     domain.Actor{ID: "u-1"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, repo.updates)

	// Повторная отмена - no-op: запись не меняется, второй записи в хранилище нет
	second, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Reason:    ptr.Ptr("second reason"),
		Actor:     domain.Actor{ID: "u-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.updates)

	assert.Equal(t, first.Status, second.Status)
	require.NotNil(t, second.Metadata.Cancellation)
	assert.Equal(t, "first reason", second.Metadata.Cancellation.Reason)
	assert.Equal(t, "u-1", second.Metadata.Cancellation.CancelledBy)
	assert.True(t, first.Metadata.Cancellation.CancelledAt.Equal(second.Metadata.Cancellation.CancelledAt))
}

package review_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/resource"
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

type fakeStore struct {
	resources map[string]*domain.FacilityResource
	bookings  map[string]*domain.FacilityBooking
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*domain.FacilityBooking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (s *fakeStore) Update(_ context.Context, b *domain.FacilityBooking) (*domain.FacilityBooking, error) {
	if _, ok := s.bookings[b.ID]; !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	copied.UpdatedAt = time.Now().UTC()
	s.bookings[b.ID] = &copied
	return &copied, nil
}

type fakeResources struct{ store *fakeStore }

func (r *fakeResources) GetByID(_ context.Context, id string) (*domain.FacilityResource, error) {
	res, ok := r.store.resources[id]
	if !ok {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return res, nil
}

var reviewTime = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func newTestUseCase() (*UseCase, *fakeStore) {
	store := &fakeStore{
		resources: make(map[string]*domain.FacilityResource),
		bookings:  make(map[string]*domain.FacilityBooking),
	}

	store.resources["r-1"] = &domain.FacilityResource{
		ID:   "r-1",
		Type: domain.TypeLab,
		Name: "Lab 1",
		ApprovalPolicy: &domain.ApprovalPolicy{
			RequiresApproval: true,
			ApproverEmails:   []string{"lead@corp.io"},
		},
	}

	store.bookings["b-1"] = &domain.FacilityBooking{
		ID:         "b-1",
		ResourceID: "r-1",
		Title:      "Experiment",
		StartTime:  time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2024, time.March, 4, 14, 0, 0, 0, time.UTC),
		Status:     domain.StatusPending,
		CreatedBy:  "u-1",
		Metadata: domain.BookingMetadata{
			Approval: &domain.ApprovalState{
				Status:      domain.ApprovalStatusPending,
				RequestedBy: "u-1",
				RequestedAt: reviewTime.Add(-time.Hour),
				Approvers:   []string{"lead@corp.io"},
				History:     []domain.ApprovalDecision{},
			},
		},
	}

	uc := NewUseCase(store, &fakeResources{store: store}, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: reviewTime}

	return uc, store
}

func approver() domain.Actor {
	return domain.Actor{ID: "u-2", Email: ptr.Ptr("lead@corp.io")}
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: "missing",
		Decision:  DecisionApprove,
		Actor:     approver(),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidDecision(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Decision:  Decision("maybe"),
		Actor:     approver(),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NotPending(t *testing.T) {
	uc, store := newTestUseCase()
	store.bookings["b-1"].Status = domain.StatusConfirmed

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Decision:  DecisionApprove,
		Actor:     approver(),
	})
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestExecute_Unauthorized(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Decision:  DecisionApprove,
		Actor:     domain.Actor{ID: "u-3", Email: ptr.Ptr("intruder@corp.io")},
	})
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Актор без email тоже не проходит проверку
	_, err = uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Decision:  DecisionApprove,
		Actor:     domain.Actor{ID: "u-3"},
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestExecute_EmptyApproverList_AnyActorMayReview(t *testing.T) {
	uc, store := newTestUseCase()
	store.resources["r-1"].ApprovalPolicy.ApproverEmails = nil

	booking, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Decision:  DecisionApprove,
		Actor:     domain.Actor{ID: "u-3"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
}

func TestExecute_Approve(t *testing.T) {
	uc, _ := newTestUseCase()

	note := "ok for me"
	booking, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Decision:  DecisionApprove,
		Note:      &note,
		Actor:     approver(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	require.NotNil(t, booking.Metadata.Approval)
	assert.Equal(t, domain.ApprovalStatusApproved, booking.Metadata.Approval.Status)
	require.Len(t, booking.Metadata.Approval.History, 1)

	entry := booking.Metadata.Approval.History[0]
	assert.Equal(t, domain.DecisionApproved, entry.Decision)
	assert.Equal(t, "u-2", entry.ActorID)
	assert.Equal(t, &note, entry.Note)
	assert.True(t, entry.DecidedAt.Equal(reviewTime))

	assert.Nil(t, booking.Metadata.Cancellation)
}

func TestExecute_Reject(t *testing.T) {
	uc, _ := newTestUseCase()

	booking, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Decision:  DecisionReject,
		Actor:     approver(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, booking.Status)
	assert.Equal(t, domain.ApprovalStatusRejected, booking.Metadata.Approval.Status)
	require.Len(t, booking.Metadata.Approval.History, 1)
	assert.Equal(t, domain.DecisionRejected, booking.Metadata.Approval.History[0].Decision)

	// Отклонение записывает cancellation с причиной по умолчанию
	require.NotNil(t, booking.Metadata.Cancellation)
	assert.Equal(t, domain.DefaultRejectionReason, booking.Metadata.Cancellation.Reason)
	assert.Equal(t, "u-2", booking.Metadata.Cancellation.CancelledBy)
}

func TestExecute_RejectWithNoteUsesNoteAsReason(t *testing.T) {
	uc, _ := newTestUseCase()

	note := "lab is under maintenance that week"
	booking, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Decision:  DecisionReject,
		Note:      &note,
		Actor:     approver(),
	})
	require.NoError(t, err)

	require.NotNil(t, booking.Metadata.Cancellation)
	assert.Equal(t, note, booking.Metadata.Cancellation.Reason)
}

func TestExecute_SecondReviewFailsNotPending(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Decision:  DecisionApprove,
		Actor:     approver(),
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Decision:  DecisionReject,
		Actor:     approver(),
	})
	assert.ErrorIs(t, err, ErrNotPending)
}

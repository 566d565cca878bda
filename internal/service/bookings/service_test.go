package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	bookingRepo "github.com/v0ronc/CRM-SchedulingService/internal/infra/storage/booking"
	pageRepo "github.com/v0ronc/CRM-SchedulingService/internal/infra/storage/page"
	"github.com/v0ronc/CRM-SchedulingService/internal/integrations/accountservice"
	"github.com/v0ronc/CRM-SchedulingService/internal/service/bookings/models"
)

type fakePageRepo struct {
	pages map[int64]*domain.BookingPage
}

func (f *fakePageRepo) GetByID(_ context.Context, id int64) (*domain.BookingPage, error) {
	page, ok := f.pages[id]
	if !ok {
		return nil, pageRepo.ErrPageNotFound
	}
	cp := *page
	return &cp, nil
}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) GetByPageWithFilter(_ context.Context, filter domain.PageBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.PageID != filter.PageID {
			continue
		}
		if !filter.IncludeInactive && !b.BlocksSlot() {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		cp := *b
		result = append(result, &cp)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusCancelled
	if reason != "" {
		b.CancellationReason = &reason
	}
	now := time.Now()
	b.CancelledAt = &now
	return nil
}

type fakeAccountClient struct{}

func (f *fakeAccountClient) GetOperator(_ context.Context, userID int64) (*accountservice.Operator, error) {
	return &accountservice.Operator{ID: userID, IsActive: true}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking(id, pageID int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		PageID:        pageID,
		Reference:     uuid.New(),
		BookingDate:   time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		EndTime:       "10:30",
		Status:        status,
		ProspectName:  "Ivan Petrov",
		ProspectEmail: "ivan@example.com",
	}
}

func newTestService(pages *fakePageRepo, repo *fakeBookingRepo) *Service {
	return NewService(pages, repo, &fakeAccountClient{}, nopLogger{})
}

func ownerPage(id, ownerID int64) *domain.BookingPage {
	return &domain.BookingPage{ID: id, OwnerUserID: ownerID, IsActive: true, Timezone: "UTC"}
}

func TestGetPageBookings_FiltersCancelledByDefault(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: ownerPage(1, 10)}}
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: testBooking(1, 1, domain.StatusConfirmed),
		2: testBooking(2, 1, domain.StatusCancelled),
	}}
	svc := newTestService(pages, repo)

	resp, err := svc.GetPageBookings(context.Background(), &models.GetPageBookingsRequest{PageID: 1, UserID: 10})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Bookings[0].Status)
}

func TestGetPageBookings_IncludeInactive(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: ownerPage(1, 10)}}
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: testBooking(1, 1, domain.StatusConfirmed),
		2: testBooking(2, 1, domain.StatusCancelled),
	}}
	svc := newTestService(pages, repo)

	resp, err := svc.GetPageBookings(context.Background(), &models.GetPageBookingsRequest{
		PageID: 1, UserID: 10, IncludeInactive: true,
	})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestGetPageBookings_InvalidStatusFilter(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: ownerPage(1, 10)}}
	svc := newTestService(pages, &fakeBookingRepo{bookings: map[int64]*domain.Booking{}})

	badStatus := "в ожидании"
	_, err := svc.GetPageBookings(context.Background(), &models.GetPageBookingsRequest{
		PageID: 1, UserID: 10, Status: &badStatus,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetPageBookings_AccessDenied(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: ownerPage(1, 10)}}
	svc := newTestService(pages, &fakeBookingRepo{bookings: map[int64]*domain.Booking{}})

	_, err := svc.GetPageBookings(context.Background(), &models.GetPageBookingsRequest{PageID: 1, UserID: 999})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_ConfirmedToCompleted(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: ownerPage(1, 10)}}
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(1, 1, domain.StatusConfirmed)}}
	svc := newTestService(pages, repo)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 10, Status: "completed"})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, repo.bookings[1].Status)
}

func TestUpdateStatus_CancelledStampsCancelledAt(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: ownerPage(1, 10)}}
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(1, 1, domain.StatusConfirmed)}}
	svc := newTestService(pages, repo)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 10, Status: "cancelled"})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	assert.NotNil(t, repo.bookings[1].CancelledAt)
}

func TestUpdateStatus_FromTerminalStateRejected(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: ownerPage(1, 10)}}

	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(1, 1, status)}}
			svc := newTestService(pages, repo)

			err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 10, Status: "completed"})

			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: ownerPage(1, 10)}}
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(1, 1, domain.StatusConfirmed)}}
	svc := newTestService(pages, repo)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 10, Status: "archived"})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_AccessDenied(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: ownerPage(1, 10)}}
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(1, 1, domain.StatusConfirmed)}}
	svc := newTestService(pages, repo)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 999, Status: "completed"})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_WithReason(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: ownerPage(1, 10)}}
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(1, 1, domain.StatusConfirmed)}}
	svc := newTestService(pages, repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             10,
		CancellationReason: "клиент перенёс встречу",
	})

	require.NoError(t, err)
	b := repo.bookings[1]
	assert.Equal(t, domain.StatusCancelled, b.Status)
	require.NotNil(t, b.CancellationReason)
	assert.Equal(t, "клиент перенёс встречу", *b.CancellationReason)
	assert.NotNil(t, b.CancelledAt)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: ownerPage(1, 10)}}
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking(1, 1, domain.StatusCancelled)}}
	svc := newTestService(pages, repo)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 10})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_BookingNotFound(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: ownerPage(1, 10)}}
	svc := newTestService(pages, &fakeBookingRepo{bookings: map[int64]*domain.Booking{}})

	err := svc.Cancel(context.Background(), 12345, &models.CancelBookingRequest{UserID: 10})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

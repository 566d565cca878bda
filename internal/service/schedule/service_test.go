package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	pageRepo "github.com/v0ronc/CRM-SchedulingService/internal/infra/storage/page"
	scheduleRepo "github.com/v0ronc/CRM-SchedulingService/internal/infra/storage/schedule"
	"github.com/v0ronc/CRM-SchedulingService/internal/integrations/accountservice"
	"github.com/v0ronc/CRM-SchedulingService/internal/service/schedule/models"
	"github.com/v0ronc/CRM-SchedulingService/pkg/ptr"
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

type fakeScheduleRepo struct {
	nextID     int64
	windows    map[int64][]domain.AvailabilityWindow
	exceptions map[int64]*domain.Exception
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		nextID:     1,
		windows:    make(map[int64][]domain.AvailabilityWindow),
		exceptions: make(map[int64]*domain.Exception),
	}
}

func (f *fakeScheduleRepo) ListWindows(_ context.Context, pageID int64) ([]domain.AvailabilityWindow, error) {
	return f.windows[pageID], nil
}

func (f *fakeScheduleRepo) ReplaceWindows(_ context.Context, pageID int64, windows []domain.AvailabilityWindow) ([]domain.AvailabilityWindow, error) {
	saved := make([]domain.AvailabilityWindow, 0, len(windows))
	for _, w := range windows {
		w.ID = f.nextID
		w.PageID = pageID
		f.nextID++
		saved = append(saved, w)
	}
	f.windows[pageID] = saved
	return saved, nil
}

func (f *fakeScheduleRepo) ListExceptions(_ context.Context, pageID int64, from time.Time) ([]domain.Exception, error) {
	result := make([]domain.Exception, 0)
	for _, e := range f.exceptions {
		if e.PageID == pageID && !e.ExceptionDate.Before(from) {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) CreateException(_ context.Context, exception *domain.Exception) (*domain.Exception, error) {
	for _, e := range f.exceptions {
		if e.PageID == exception.PageID && e.ExceptionDate.Equal(exception.ExceptionDate) {
			return nil, scheduleRepo.ErrExceptionExists
		}
	}
	cp := *exception
	cp.ID = f.nextID
	f.nextID++
	f.exceptions[cp.ID] = &cp
	result := cp
	return &result, nil
}

func (f *fakeScheduleRepo) GetExceptionByID(_ context.Context, id int64) (*domain.Exception, error) {
	e, ok := f.exceptions[id]
	if !ok {
		return nil, scheduleRepo.ErrExceptionNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeScheduleRepo) DeleteException(_ context.Context, id int64) error {
	if _, ok := f.exceptions[id]; !ok {
		return scheduleRepo.ErrExceptionNotFound
	}
	delete(f.exceptions, id)
	return nil
}

type fakeAccountClient struct{}

func (f *fakeAccountClient) GetOperator(_ context.Context, userID int64) (*accountservice.Operator, error) {
	return &accountservice.Operator{ID: userID, IsActive: true}, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testPage(id, ownerID int64) *domain.BookingPage {
	return &domain.BookingPage{
		ID:          id,
		OwnerUserID: ownerID,
		Slug:        "intro-call",
		Title:       "Intro Call",
		Timezone:    "UTC",
		IsActive:    true,
	}
}

func newTestService(pages *fakePageRepo, repo *fakeScheduleRepo) *Service {
	return NewService(pages, repo, &fakeAccountClient{}, &fakeTxManager{}, nopLogger{})
}

func TestReplaceAvailability_SavesWindows(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: testPage(1, 10)}}
	repo := newFakeScheduleRepo()
	svc := newTestService(pages, repo)

	resp, err := svc.ReplaceAvailability(context.Background(), 1, &models.ReplaceAvailabilityRequest{
		UserID: 10,
		Windows: []models.WindowRequest{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00"},
			{DayOfWeek: 1, StartTime: "14:00", EndTime: "18:00"},
		},
	})

	require.NoError(t, err)
	require.Len(t, resp.Windows, 2)
	assert.Equal(t, "09:00", resp.Windows[0].StartTime)
	assert.Len(t, repo.windows[1], 2)
}

func TestReplaceAvailability_EmptyListClearsSchedule(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: testPage(1, 10)}}
	repo := newFakeScheduleRepo()
	repo.windows[1] = []domain.AvailabilityWindow{{ID: 5, PageID: 1, DayOfWeek: 2, StartTime: "09:00", EndTime: "18:00"}}
	svc := newTestService(pages, repo)

	resp, err := svc.ReplaceAvailability(context.Background(), 1, &models.ReplaceAvailabilityRequest{
		UserID:  10,
		Windows: []models.WindowRequest{},
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Windows)
	assert.Empty(t, repo.windows[1])
}

func TestReplaceAvailability_RejectsInvalidWindows(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: testPage(1, 10)}}
	svc := newTestService(pages, newFakeScheduleRepo())

	tests := []struct {
		name   string
		window models.WindowRequest
	}{
		{"day out of range", models.WindowRequest{DayOfWeek: 7, StartTime: "09:00", EndTime: "18:00"}},
		{"malformed time", models.WindowRequest{DayOfWeek: 1, StartTime: "9am", EndTime: "18:00"}},
		{"start after end", models.WindowRequest{DayOfWeek: 1, StartTime: "18:00", EndTime: "09:00"}},
		{"zero length", models.WindowRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ReplaceAvailability(context.Background(), 1, &models.ReplaceAvailabilityRequest{
				UserID:  10,
				Windows: []models.WindowRequest{tt.window},
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestReplaceAvailability_AccessDenied(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: testPage(1, 10)}}
	svc := newTestService(pages, newFakeScheduleRepo())

	_, err := svc.ReplaceAvailability(context.Background(), 1, &models.ReplaceAvailabilityRequest{
		UserID:  999,
		Windows: []models.WindowRequest{},
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreateException_ParsesDate(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: testPage(1, 10)}}
	repo := newFakeScheduleRepo()
	svc := newTestService(pages, repo)

	resp, err := svc.CreateException(context.Background(), 1, &models.CreateExceptionRequest{
		UserID: 10,
		Date:   "2026-03-09",
		Reason: ptr.Ptr("holiday"),
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", resp.Date)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, "holiday", *resp.Reason)
}

func TestCreateException_DuplicateDate(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: testPage(1, 10)}}
	repo := newFakeScheduleRepo()
	svc := newTestService(pages, repo)

	_, err := svc.CreateException(context.Background(), 1, &models.CreateExceptionRequest{UserID: 10, Date: "2026-03-09"})
	require.NoError(t, err)

	_, err = svc.CreateException(context.Background(), 1, &models.CreateExceptionRequest{UserID: 10, Date: "2026-03-09"})
	assert.ErrorIs(t, err, ErrExceptionExists)
}

func TestCreateException_InvalidDate(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: testPage(1, 10)}}
	svc := newTestService(pages, newFakeScheduleRepo())

	_, err := svc.CreateException(context.Background(), 1, &models.CreateExceptionRequest{
		UserID: 10,
		Date:   "09.03.2026",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListExceptions_SkipsPastDates(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: testPage(1, 10)}}
	repo := newFakeScheduleRepo()
	svc := newTestService(pages, repo)
	svc.timeProvider = &fixedTime{now: time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)}

	_, err := svc.CreateException(context.Background(), 1, &models.CreateExceptionRequest{UserID: 10, Date: "2026-03-02"})
	require.NoError(t, err)
	_, err = svc.CreateException(context.Background(), 1, &models.CreateExceptionRequest{UserID: 10, Date: "2026-03-09"})
	require.NoError(t, err)
	_, err = svc.CreateException(context.Background(), 1, &models.CreateExceptionRequest{UserID: 10, Date: "2026-03-16"})
	require.NoError(t, err)

	resp, err := svc.ListExceptions(context.Background(), 1, 10)

	require.NoError(t, err)
	require.Len(t, resp.Exceptions, 2)
	dates := []string{resp.Exceptions[0].Date, resp.Exceptions[1].Date}
	assert.NotContains(t, dates, "2026-03-02")
}

func TestDeleteException_OwnerOnly(t *testing.T) {
	pages := &fakePageRepo{pages: map[int64]*domain.BookingPage{1: testPage(1, 10)}}
	repo := newFakeScheduleRepo()
	svc := newTestService(pages, repo)

	created, err := svc.CreateException(context.Background(), 1, &models.CreateExceptionRequest{UserID: 10, Date: "2026-03-09"})
	require.NoError(t, err)

	err = svc.DeleteException(context.Background(), created.ID, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.DeleteException(context.Background(), created.ID, 10)
	require.NoError(t, err)

	err = svc.DeleteException(context.Background(), created.ID, 10)
	assert.ErrorIs(t, err, ErrExceptionNotFound)
}

package pages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	pageRepo "github.com/v0ronc/CRM-SchedulingService/internal/infra/storage/page"
	"github.com/v0ronc/CRM-SchedulingService/internal/integrations/accountservice"
	"github.com/v0ronc/CRM-SchedulingService/internal/service/pages/models"
	"github.com/v0ronc/CRM-SchedulingService/pkg/ptr"
)

type fakePageRepo struct {
	nextID int64
	pages  map[int64]*domain.BookingPage
	fields map[int64][]domain.QualificationField
}

func newFakePageRepo() *fakePageRepo {
	return &fakePageRepo{
		nextID: 1,
		pages:  make(map[int64]*domain.BookingPage),
		fields: make(map[int64][]domain.QualificationField),
	}
}

func (f *fakePageRepo) Create(_ context.Context, page *domain.BookingPage) (*domain.BookingPage, error) {
	for _, p := range f.pages {
		if p.Slug == page.Slug {
			return nil, pageRepo.ErrSlugTaken
		}
	}
	cp := *page
	cp.ID = f.nextID
	f.nextID++
	f.pages[cp.ID] = &cp
	result := cp
	return &result, nil
}

func (f *fakePageRepo) GetByID(_ context.Context, id int64) (*domain.BookingPage, error) {
	page, ok := f.pages[id]
	if !ok {
		return nil, pageRepo.ErrPageNotFound
	}
	cp := *page
	return &cp, nil
}

func (f *fakePageRepo) GetBySlug(_ context.Context, slug string) (*domain.BookingPage, error) {
	for _, p := range f.pages {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, pageRepo.ErrPageNotFound
}

func (f *fakePageRepo) ListByOwner(_ context.Context, ownerUserID int64) ([]*domain.BookingPage, error) {
	result := make([]*domain.BookingPage, 0)
	for _, p := range f.pages {
		if p.OwnerUserID == ownerUserID {
			cp := *p
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *fakePageRepo) Update(_ context.Context, id int64, page *domain.BookingPage) (*domain.BookingPage, error) {
	existing, ok := f.pages[id]
	if !ok {
		return nil, pageRepo.ErrPageNotFound
	}
	cp := *page
	cp.ID = id
	cp.Slug = existing.Slug
	f.pages[id] = &cp
	result := cp
	return &result, nil
}

func (f *fakePageRepo) ListFields(_ context.Context, pageID int64) ([]domain.QualificationField, error) {
	return f.fields[pageID], nil
}

func (f *fakePageRepo) ReplaceFields(_ context.Context, pageID int64, fields []domain.QualificationField) ([]domain.QualificationField, error) {
	saved := make([]domain.QualificationField, 0, len(fields))
	for i, field := range fields {
		field.ID = int64(i + 1)
		field.PageID = pageID
		saved = append(saved, field)
	}
	f.fields[pageID] = saved
	return saved, nil
}

type fakeAccountClient struct {
	operator    *accountservice.Operator
	operatorErr error
	degradedErr error
}

func (f *fakeAccountClient) GetOperator(_ context.Context, userID int64) (*accountservice.Operator, error) {
	if f.operatorErr != nil {
		return nil, f.operatorErr
	}
	if f.operator != nil {
		return f.operator, nil
	}
	return &accountservice.Operator{ID: userID, IsActive: true}, nil
}

func (f *fakeAccountClient) GetOperatorWithGracefulDegradation(_ context.Context, _ int64) (*accountservice.Operator, error) {
	if f.degradedErr != nil {
		return nil, f.degradedErr
	}
	return f.operator, nil
}

type fakeTxManager struct {
	readOnlyCalls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.readOnlyCalls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakePageRepo, client *fakeAccountClient) *Service {
	if client == nil {
		client = &fakeAccountClient{}
	}
	return NewService(repo, client, &fakeTxManager{}, nopLogger{})
}

func TestCreate_GeneratesSlugAndAppliesDefaults(t *testing.T) {
	repo := newFakePageRepo()
	svc := newTestService(repo, nil)

	resp, err := svc.Create(context.Background(), &models.CreatePageRequest{
		UserID: 10,
		Title:  "Intro Call",
	})

	require.NoError(t, err)
	assert.Equal(t, "intro-call", resp.Slug)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.SlotDurationMinutes)
	assert.Equal(t, domain.DefaultMaxDaysAhead, resp.MaxDaysAhead)
	assert.Equal(t, domain.DefaultTimezone, resp.Timezone)
	assert.True(t, resp.IsActive)
}

func TestCreate_SlugCollisionAddsSuffix(t *testing.T) {
	repo := newFakePageRepo()
	svc := newTestService(repo, nil)

	first, err := svc.Create(context.Background(), &models.CreatePageRequest{UserID: 10, Title: "Intro Call"})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), &models.CreatePageRequest{UserID: 11, Title: "Intro Call"})
	require.NoError(t, err)

	assert.Equal(t, "intro-call", first.Slug)
	assert.Equal(t, "intro-call-2", second.Slug)
}

func TestCreate_SlugExhaustedReturnsErrSlugTaken(t *testing.T) {
	repo := newFakePageRepo()
	svc := newTestService(repo, nil)

	for i := 0; i < maxSlugAttempts; i++ {
		_, err := svc.Create(context.Background(), &models.CreatePageRequest{UserID: 10, Title: "Intro Call"})
		require.NoError(t, err)
	}

	_, err := svc.Create(context.Background(), &models.CreatePageRequest{UserID: 10, Title: "Intro Call"})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestCreate_InactiveOperatorRejected(t *testing.T) {
	repo := newFakePageRepo()
	client := &fakeAccountClient{operator: &accountservice.Operator{ID: 10, IsActive: false}}
	svc := newTestService(repo, client)

	_, err := svc.Create(context.Background(), &models.CreatePageRequest{UserID: 10, Title: "Intro Call"})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_AccountServiceDownRejectsMutation(t *testing.T) {
	repo := newFakePageRepo()
	client := &fakeAccountClient{operatorErr: accountservice.ErrInternal}
	svc := newTestService(repo, client)

	_, err := svc.Create(context.Background(), &models.CreatePageRequest{UserID: 10, Title: "Intro Call"})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestCreate_InvalidSlotDuration(t *testing.T) {
	repo := newFakePageRepo()
	svc := newTestService(repo, nil)

	_, err := svc.Create(context.Background(), &models.CreatePageRequest{
		UserID:              10,
		Title:               "Intro Call",
		SlotDurationMinutes: ptr.Ptr(42),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_UnknownTimezone(t *testing.T) {
	repo := newFakePageRepo()
	svc := newTestService(repo, nil)

	_, err := svc.Create(context.Background(), &models.CreatePageRequest{
		UserID:   10,
		Title:    "Intro Call",
		Timezone: ptr.Ptr("Mars/Olympus"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_SelectFieldWithoutOptions(t *testing.T) {
	repo := newFakePageRepo()
	svc := newTestService(repo, nil)

	_, err := svc.Create(context.Background(), &models.CreatePageRequest{
		UserID: 10,
		Title:  "Intro Call",
		Fields: []models.FieldRequest{
			{Label: "Team size", Type: "select"},
		},
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_PartialUpdateKeepsSlugAndFields(t *testing.T) {
	repo := newFakePageRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(context.Background(), &models.CreatePageRequest{
		UserID: 10,
		Title:  "Intro Call",
		Fields: []models.FieldRequest{
			{Label: "Company", Type: "text", IsRequired: true},
		},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &models.UpdatePageRequest{
		UserID: 10,
		Title:  ptr.Ptr("Discovery Call"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Discovery Call", updated.Title)
	assert.Equal(t, "intro-call", updated.Slug, "slug must survive a title change")
	require.Len(t, updated.Fields, 1)
	assert.Equal(t, "Company", updated.Fields[0].Label)
}

func TestUpdate_EmptyFieldsClearsFields(t *testing.T) {
	repo := newFakePageRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(context.Background(), &models.CreatePageRequest{
		UserID: 10,
		Title:  "Intro Call",
		Fields: []models.FieldRequest{
			{Label: "Company", Type: "text"},
		},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &models.UpdatePageRequest{
		UserID: 10,
		Fields: &[]models.FieldRequest{},
	})

	require.NoError(t, err)
	assert.Empty(t, updated.Fields)
}

func TestUpdate_AccessDenied(t *testing.T) {
	repo := newFakePageRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(context.Background(), &models.CreatePageRequest{UserID: 10, Title: "Intro Call"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, &models.UpdatePageRequest{
		UserID: 999,
		Title:  ptr.Ptr("Hijacked"),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newFakePageRepo(), nil)

	_, err := svc.GetByID(context.Background(), 12345, 10)

	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestListByOwner_ReadsInReadOnlyTransaction(t *testing.T) {
	repo := newFakePageRepo()
	txMgr := &fakeTxManager{}
	svc := NewService(repo, &fakeAccountClient{}, txMgr, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreatePageRequest{UserID: 10, Title: "Intro Call"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &models.CreatePageRequest{UserID: 10, Title: "Demo Call"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &models.CreatePageRequest{UserID: 20, Title: "Other Call"})
	require.NoError(t, err)

	resp, err := svc.ListByOwner(context.Background(), 10)

	require.NoError(t, err)
	assert.Len(t, resp.Pages, 2)
	assert.Equal(t, 1, txMgr.readOnlyCalls)
}

func TestGetPublicBySlug_InactivePage(t *testing.T) {
	repo := newFakePageRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Create(context.Background(), &models.CreatePageRequest{UserID: 10, Title: "Intro Call"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, &models.UpdatePageRequest{
		UserID:   10,
		IsActive: ptr.Ptr(false),
	})
	require.NoError(t, err)

	_, err = svc.GetPublicBySlug(context.Background(), created.Slug)
	assert.ErrorIs(t, err, ErrPageInactive)
}

func TestGetPublicBySlug_WithOperatorCard(t *testing.T) {
	repo := newFakePageRepo()
	client := &fakeAccountClient{
		operator: &accountservice.Operator{DisplayName: "Anna K", AvatarURL: "https://cdn/avatar.png", IsActive: true},
	}
	svc := newTestService(repo, client)

	created, err := svc.Create(context.Background(), &models.CreatePageRequest{UserID: 10, Title: "Intro Call"})
	require.NoError(t, err)

	resp, err := svc.GetPublicBySlug(context.Background(), created.Slug)

	require.NoError(t, err)
	require.NotNil(t, resp.Operator)
	assert.Equal(t, "Anna K", resp.Operator.DisplayName)
}

func TestGetPublicBySlug_DegradedAccountService(t *testing.T) {
	repo := newFakePageRepo()
	client := &fakeAccountClient{degradedErr: accountservice.ErrServiceDegraded}
	svc := newTestService(repo, client)

	created, err := svc.Create(context.Background(), &models.CreatePageRequest{UserID: 10, Title: "Intro Call"})
	require.NoError(t, err)

	resp, err := svc.GetPublicBySlug(context.Background(), created.Slug)

	require.NoError(t, err, "page must be served without the operator card")
	assert.Nil(t, resp.Operator)
}

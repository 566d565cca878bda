package pages

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gosimple/slug"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	"github.com/v0ronc/CRM-SchedulingService/internal/integrations/accountservice"
	pageRepo "github.com/v0ronc/CRM-SchedulingService/internal/infra/storage/page"
	"github.com/v0ronc/CRM-SchedulingService/internal/service/pages/models"
)

// Максимальное число попыток подобрать свободный slug с числовым суффиксом
const maxSlugAttempts = 5

// Service сервис для работы со страницами бронирования
type Service struct {
	pageRepo      PageRepository
	accountClient AccountServiceClient
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса страниц
func NewService(
	pageRepo PageRepository,
	accountClient AccountServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		pageRepo:      pageRepo,
		accountClient: accountClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// Create создает новую страницу бронирования с квалификационными полями.
// Slug генерируется из названия, при коллизии добавляется числовой суффикс.
func (s *Service) Create(ctx context.Context, req *models.CreatePageRequest) (*models.PageResponse, error) {
	s.logger.Info("Create: creating page for user=%d, title=%q", req.UserID, req.Title)

	if err := s.validateOperator(ctx, req.UserID); err != nil {
		return nil, err
	}

	page := &domain.BookingPage{
		OwnerUserID:         req.UserID,
		Title:               req.Title,
		Description:         req.Description,
		SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
		BufferMinutes:       domain.DefaultBufferMinutes,
		MinNoticeHours:      domain.DefaultMinNoticeHours,
		MaxDaysAhead:        domain.DefaultMaxDaysAhead,
		Timezone:            domain.DefaultTimezone,
		IsActive:            true,
	}
	applyPolicyOverrides(page, req.SlotDurationMinutes, req.BufferMinutes, req.MinNoticeHours, req.MaxDaysAhead, req.Timezone)

	if err := validatePage(page); err != nil {
		s.logger.Warn("Create: validation failed for user=%d: %v", req.UserID, err)
		return nil, err
	}

	fields := models.ToDomainFields(req.Fields)
	if err := validateFields(fields); err != nil {
		s.logger.Warn("Create: fields validation failed for user=%d: %v", req.UserID, err)
		return nil, err
	}

	var created *domain.BookingPage
	var createdFields []domain.QualificationField

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.createWithUniqueSlug(txCtx, page)
		if err != nil {
			return err
		}

		createdFields, err = s.pageRepo.ReplaceFields(txCtx, created.ID, fields)
		if err != nil {
			s.logger.Error("Create: failed to save fields for page id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: Create - failed to save fields: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: successfully created page id=%d, slug=%s", created.ID, created.Slug)
	return models.FromDomainPage(created, createdFields), nil
}

// GetByID получает страницу по ID (только владелец)
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.PageResponse, error) {
	s.logger.Info("GetByID: fetching page id=%d for user=%d", id, userID)

	page, err := s.getOwnedPage(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	fields, err := s.pageRepo.ListFields(ctx, page.ID)
	if err != nil {
		s.logger.Error("GetByID: failed to get fields for page id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to get fields: %v", ErrInternal, err)
	}

	return models.FromDomainPage(page, fields), nil
}

// ListByOwner получает все страницы оператора
func (s *Service) ListByOwner(ctx context.Context, userID int64) (*models.PageListResponse, error) {
	s.logger.Info("ListByOwner: fetching pages for user=%d", userID)

	var resp *models.PageListResponse

	// Список страниц и их поля читаются в одной read-only транзакции,
	// чтобы поля не разъезжались с только что измененными страницами.
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		pages, err := s.pageRepo.ListByOwner(txCtx, userID)
		if err != nil {
			s.logger.Error("ListByOwner: repository error for user=%d: %v", userID, err)
			return fmt.Errorf("%w: ListByOwner - repository error: %v", ErrInternal, err)
		}

		resp = &models.PageListResponse{Pages: make([]models.PageResponse, 0, len(pages))}
		for _, page := range pages {
			fields, err := s.pageRepo.ListFields(txCtx, page.ID)
			if err != nil {
				s.logger.Error("ListByOwner: failed to get fields for page id=%d: %v", page.ID, err)
				return fmt.Errorf("%w: ListByOwner - failed to get fields: %v", ErrInternal, err)
			}
			resp.Pages = append(resp.Pages, *models.FromDomainPage(page, fields))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ListByOwner: successfully fetched %d pages for user=%d", len(resp.Pages), userID)
	return resp, nil
}

// Update обновляет страницу бронирования (только владелец).
// Nil-поля запроса не изменяются, slug при смене названия не меняется.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdatePageRequest) (*models.PageResponse, error) {
	s.logger.Info("Update: updating page id=%d by user=%d", id, req.UserID)

	if err := s.validateOperator(ctx, req.UserID); err != nil {
		return nil, err
	}

	page, err := s.getOwnedPage(ctx, id, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		page.Title = *req.Title
	}
	if req.Description != nil {
		page.Description = req.Description
	}
	if req.IsActive != nil {
		page.IsActive = *req.IsActive
	}
	applyPolicyOverrides(page, req.SlotDurationMinutes, req.BufferMinutes, req.MinNoticeHours, req.MaxDaysAhead, req.Timezone)

	if err := validatePage(page); err != nil {
		s.logger.Warn("Update: validation failed for page id=%d: %v", id, err)
		return nil, err
	}

	var fields []domain.QualificationField
	if req.Fields != nil {
		fields = models.ToDomainFields(*req.Fields)
		if err := validateFields(fields); err != nil {
			s.logger.Warn("Update: fields validation failed for page id=%d: %v", id, err)
			return nil, err
		}
	}

	var updated *domain.BookingPage
	var resultFields []domain.QualificationField

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.pageRepo.Update(txCtx, id, page)
		if err != nil {
			if errors.Is(err, pageRepo.ErrPageNotFound) {
				return ErrPageNotFound
			}
			s.logger.Error("Update: repository error for page id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		if req.Fields != nil {
			resultFields, err = s.pageRepo.ReplaceFields(txCtx, id, fields)
			if err != nil {
				s.logger.Error("Update: failed to replace fields for page id=%d: %v", id, err)
				return fmt.Errorf("%w: Update - failed to replace fields: %v", ErrInternal, err)
			}
		} else {
			resultFields, err = s.pageRepo.ListFields(txCtx, id)
			if err != nil {
				s.logger.Error("Update: failed to get fields for page id=%d: %v", id, err)
				return fmt.Errorf("%w: Update - failed to get fields: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated page id=%d", id)
	return models.FromDomainPage(updated, resultFields), nil
}

// GetPublicBySlug получает публичное представление страницы по slug.
// Карточка оператора подтягивается из AccountService с graceful degradation:
// при его недоступности страница отдаётся без карточки.
func (s *Service) GetPublicBySlug(ctx context.Context, pageSlug string) (*models.PublicPageResponse, error) {
	s.logger.Info("GetPublicBySlug: fetching page slug=%s", pageSlug)

	page, err := s.pageRepo.GetBySlug(ctx, pageSlug)
	if err != nil {
		if errors.Is(err, pageRepo.ErrPageNotFound) {
			s.logger.Warn("GetPublicBySlug: page slug=%s not found", pageSlug)
			return nil, ErrPageNotFound
		}
		s.logger.Error("GetPublicBySlug: repository error for slug=%s: %v", pageSlug, err)
		return nil, fmt.Errorf("%w: GetPublicBySlug - repository error: %v", ErrInternal, err)
	}

	if !page.IsActive {
		s.logger.Warn("GetPublicBySlug: page slug=%s is inactive", pageSlug)
		return nil, ErrPageInactive
	}

	fields, err := s.pageRepo.ListFields(ctx, page.ID)
	if err != nil {
		s.logger.Error("GetPublicBySlug: failed to get fields for page id=%d: %v", page.ID, err)
		return nil, fmt.Errorf("%w: GetPublicBySlug - failed to get fields: %v", ErrInternal, err)
	}

	operator, err := s.accountClient.GetOperatorWithGracefulDegradation(ctx, page.OwnerUserID)
	if err != nil {
		// Страница работает и без карточки оператора
		operator = nil
	}

	return models.FromDomainPublicPage(page, fields, operator), nil
}

// Вспомогательные методы

// validateOperator проверяет, что пользователь - активный оператор в AccountService.
// Мутации требуют живого AccountService: при его недоступности запись отклоняется
func (s *Service) validateOperator(ctx context.Context, userID int64) error {
	operator, err := s.accountClient.GetOperator(ctx, userID)
	if err != nil {
		if errors.Is(err, accountservice.ErrOperatorNotFound) {
			s.logger.Warn("validateOperator: operator user=%d not found", userID)
			return ErrAccessDenied
		}
		s.logger.Error("validateOperator: AccountService error for user=%d: %v", userID, err)
		return fmt.Errorf("%w: validateOperator - AccountService error: %v", ErrInternal, err)
	}

	if !operator.IsActive {
		s.logger.Warn("validateOperator: operator user=%d is not active", userID)
		return ErrAccessDenied
	}

	return nil
}

// getOwnedPage получает страницу и проверяет, что пользователь - её владелец
func (s *Service) getOwnedPage(ctx context.Context, id int64, userID int64) (*domain.BookingPage, error) {
	page, err := s.pageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pageRepo.ErrPageNotFound) {
			s.logger.Warn("getOwnedPage: page id=%d not found", id)
			return nil, ErrPageNotFound
		}
		s.logger.Error("getOwnedPage: repository error for page id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getOwnedPage - repository error: %v", ErrInternal, err)
	}

	if page.OwnerUserID != userID {
		s.logger.Warn("getOwnedPage: access denied for user=%d to page id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return page, nil
}

// createWithUniqueSlug создает страницу, подбирая свободный slug.
// База: slug из названия, при коллизии - суффиксы -2, -3 и т.д.
func (s *Service) createWithUniqueSlug(ctx context.Context, page *domain.BookingPage) (*domain.BookingPage, error) {
	base := slug.Make(page.Title)
	if len(base) > domain.MaxSlugLength {
		base = base[:domain.MaxSlugLength]
	}

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		if attempt == 1 {
			page.Slug = base
		} else {
			page.Slug = fmt.Sprintf("%s-%d", base, attempt)
		}

		created, err := s.pageRepo.Create(ctx, page)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, pageRepo.ErrSlugTaken) {
			s.logger.Error("createWithUniqueSlug: repository error: %v", err)
			return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Warn("createWithUniqueSlug: no free slug found for base=%s", base)
	return nil, ErrSlugTaken
}

// applyPolicyOverrides применяет ненулевые переопределения политики к странице
func applyPolicyOverrides(page *domain.BookingPage, slotDuration, buffer, notice, daysAhead *int, timezone *string) {
	if slotDuration != nil {
		page.SlotDurationMinutes = *slotDuration
	}
	if buffer != nil {
		page.BufferMinutes = *buffer
	}
	if notice != nil {
		page.MinNoticeHours = *notice
	}
	if daysAhead != nil {
		page.MaxDaysAhead = *daysAhead
	}
	if timezone != nil {
		page.Timezone = *timezone
	}
}

// validatePage проверяет атрибуты и политику страницы
func validatePage(page *domain.BookingPage) error {
	if page.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(page.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}

	if !domain.AllowedSlotDuration(page.SlotDurationMinutes) {
		return fmt.Errorf("%w: slotDurationMinutes must be one of %v", ErrInvalidInput, domain.AllowedSlotDurations)
	}
	if page.BufferMinutes < domain.MinBufferMinutes || page.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be within [%d, %d]", ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}
	if page.MinNoticeHours < domain.MinNoticeHoursMin || page.MinNoticeHours > domain.MinNoticeHoursMax {
		return fmt.Errorf("%w: minNoticeHours must be within [%d, %d]", ErrInvalidInput, domain.MinNoticeHoursMin, domain.MinNoticeHoursMax)
	}
	if page.MaxDaysAhead < domain.MinMaxDaysAhead || page.MaxDaysAhead > domain.MaxMaxDaysAhead {
		return fmt.Errorf("%w: maxDaysAhead must be within [%d, %d]", ErrInvalidInput, domain.MinMaxDaysAhead, domain.MaxMaxDaysAhead)
	}

	if _, err := time.LoadLocation(page.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, page.Timezone)
	}

	return nil
}

// validateFields проверяет набор квалификационных полей страницы
func validateFields(fields []domain.QualificationField) error {
	for _, field := range fields {
		if field.Label == "" {
			return fmt.Errorf("%w: field label is required", ErrInvalidInput)
		}
		if !domain.ValidFieldType(field.Type) {
			return fmt.Errorf("%w: unknown field type %q", ErrInvalidInput, field.Type)
		}
		if field.Type == domain.FieldSelect && len(field.Options) == 0 {
			return fmt.Errorf("%w: select field %q needs options", ErrInvalidInput, field.Label)
		}
	}
	return nil
}

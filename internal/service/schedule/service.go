package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	pageRepo "github.com/v0ronc/CRM-SchedulingService/internal/infra/storage/page"
	scheduleRepo "github.com/v0ronc/CRM-SchedulingService/internal/infra/storage/schedule"
	"github.com/v0ronc/CRM-SchedulingService/internal/integrations/accountservice"
	"github.com/v0ronc/CRM-SchedulingService/internal/service/schedule/models"
)

// Service сервис для работы с недельным расписанием и исключениями
type Service struct {
	pageRepo      PageRepository
	scheduleRepo  ScheduleRepository
	accountClient AccountServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	pageRepo PageRepository,
	scheduleRepo ScheduleRepository,
	accountClient AccountServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		pageRepo:      pageRepo,
		scheduleRepo:  scheduleRepo,
		accountClient: accountClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// GetAvailability получает недельное расписание страницы (только владелец)
func (s *Service) GetAvailability(ctx context.Context, pageID int64, userID int64) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetAvailability: fetching windows for page id=%d, user=%d", pageID, userID)

	if _, err := s.getOwnedPage(ctx, pageID, userID); err != nil {
		return nil, err
	}

	windows, err := s.scheduleRepo.ListWindows(ctx, pageID)
	if err != nil {
		s.logger.Error("GetAvailability: repository error for page id=%d: %v", pageID, err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWindows(pageID, windows), nil
}

// ReplaceAvailability заменяет недельное расписание страницы целиком (только владелец).
// Расписание применяется к будущим запросам слотов сразу; уже созданные
// бронирования оно не трогает.
func (s *Service) ReplaceAvailability(ctx context.Context, pageID int64, req *models.ReplaceAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("ReplaceAvailability: replacing %d windows for page id=%d, user=%d",
		len(req.Windows), pageID, req.UserID)

	if err := s.validateOperator(ctx, req.UserID); err != nil {
		return nil, err
	}

	if _, err := s.getOwnedPage(ctx, pageID, req.UserID); err != nil {
		return nil, err
	}

	windows := models.ToDomainWindows(req.Windows)
	if err := validateWindows(windows); err != nil {
		s.logger.Warn("ReplaceAvailability: validation failed for page id=%d: %v", pageID, err)
		return nil, err
	}

	var saved []domain.AvailabilityWindow
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = s.scheduleRepo.ReplaceWindows(txCtx, pageID, windows)
		if err != nil {
			s.logger.Error("ReplaceAvailability: repository error for page id=%d: %v", pageID, err)
			return fmt.Errorf("%w: ReplaceAvailability - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ReplaceAvailability: successfully saved %d windows for page id=%d", len(saved), pageID)
	return models.FromDomainWindows(pageID, saved), nil
}

// ListExceptions получает исключения страницы начиная с сегодняшнего дня (только владелец)
func (s *Service) ListExceptions(ctx context.Context, pageID int64, userID int64) (*models.ExceptionListResponse, error) {
	s.logger.Info("ListExceptions: fetching exceptions for page id=%d, user=%d", pageID, userID)

	page, err := s.getOwnedPage(ctx, pageID, userID)
	if err != nil {
		return nil, err
	}

	// Сегодняшний день считаем в таймзоне страницы
	now := s.timeProvider.Now().In(page.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	exceptions, err := s.scheduleRepo.ListExceptions(ctx, pageID, today)
	if err != nil {
		s.logger.Error("ListExceptions: repository error for page id=%d: %v", pageID, err)
		return nil, fmt.Errorf("%w: ListExceptions - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainExceptionList(exceptions), nil
}

// CreateException создает исключение (выходной день) для страницы (только владелец)
func (s *Service) CreateException(ctx context.Context, pageID int64, req *models.CreateExceptionRequest) (*models.ExceptionResponse, error) {
	s.logger.Info("CreateException: creating exception for page id=%d, user=%d, date=%s",
		pageID, req.UserID, req.Date)

	if err := s.validateOperator(ctx, req.UserID); err != nil {
		return nil, err
	}

	if _, err := s.getOwnedPage(ctx, pageID, req.UserID); err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("CreateException: invalid date %q for page id=%d", req.Date, pageID)
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	exception := &domain.Exception{
		PageID:        pageID,
		ExceptionDate: date,
		Reason:        req.Reason,
	}

	created, err := s.scheduleRepo.CreateException(ctx, exception)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrExceptionExists) {
			s.logger.Warn("CreateException: exception for page id=%d on %s already exists", pageID, req.Date)
			return nil, ErrExceptionExists
		}
		s.logger.Error("CreateException: repository error for page id=%d: %v", pageID, err)
		return nil, fmt.Errorf("%w: CreateException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateException: successfully created exception id=%d for page id=%d", created.ID, pageID)
	return models.FromDomainException(created), nil
}

// DeleteException удаляет исключение (только владелец страницы)
func (s *Service) DeleteException(ctx context.Context, exceptionID int64, userID int64) error {
	s.logger.Info("DeleteException: deleting exception id=%d by user=%d", exceptionID, userID)

	if err := s.validateOperator(ctx, userID); err != nil {
		return err
	}

	exception, err := s.scheduleRepo.GetExceptionByID(ctx, exceptionID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
			s.logger.Warn("DeleteException: exception id=%d not found", exceptionID)
			return ErrExceptionNotFound
		}
		s.logger.Error("DeleteException: repository error for exception id=%d: %v", exceptionID, err)
		return fmt.Errorf("%w: DeleteException - repository error: %v", ErrInternal, err)
	}

	if _, err := s.getOwnedPage(ctx, exception.PageID, userID); err != nil {
		return err
	}

	if err := s.scheduleRepo.DeleteException(ctx, exceptionID); err != nil {
		if errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
			return ErrExceptionNotFound
		}
		s.logger.Error("DeleteException: repository error for exception id=%d: %v", exceptionID, err)
		return fmt.Errorf("%w: DeleteException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteException: successfully deleted exception id=%d", exceptionID)
	return nil
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
func (s *Service) getOwnedPage(ctx context.Context, pageID int64, userID int64) (*domain.BookingPage, error) {
	page, err := s.pageRepo.GetByID(ctx, pageID)
	if err != nil {
		if errors.Is(err, pageRepo.ErrPageNotFound) {
			s.logger.Warn("getOwnedPage: page id=%d not found", pageID)
			return nil, ErrPageNotFound
		}
		s.logger.Error("getOwnedPage: repository error for page id=%d: %v", pageID, err)
		return nil, fmt.Errorf("%w: getOwnedPage - repository error: %v", ErrInternal, err)
	}

	if page.OwnerUserID != userID {
		s.logger.Warn("getOwnedPage: access denied for user=%d to page id=%d", userID, pageID)
		return nil, ErrAccessDenied
	}

	return page, nil
}

// validateWindows проверяет окна недельного расписания
func validateWindows(windows []domain.AvailabilityWindow) error {
	for _, w := range windows {
		if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
			return fmt.Errorf("%w: dayOfWeek must be within [0, 6]", ErrInvalidInput)
		}
		if err := w.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
		if err := w.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
		}
		if !w.StartTime.IsBefore(w.EndTime) {
			return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
		}
	}
	return nil
}

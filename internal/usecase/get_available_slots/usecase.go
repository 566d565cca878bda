package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	pageRepo "github.com/v0ronc/CRM-SchedulingService/internal/infra/storage/page"
)

// UseCase use case для получения доступных слотов страницы бронирования
type UseCase struct {
	pageRepo     PageRepository
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	pageRepo PageRepository,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		pageRepo:     pageRepo,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Дата вне горизонта бронирования или без окон доступности - не ошибка,
// в этих случаях возвращается пустой список слотов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: slug=%s, date=%s", req.Slug, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем страницу по slug
	page, err := uc.pageRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, pageRepo.ErrPageNotFound) {
			uc.logger.Warn("GetAvailableSlots: page slug=%s not found", req.Slug)
			return nil, ErrPageNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get page slug=%s: %v", req.Slug, err)
		return nil, fmt.Errorf("%w: failed to get page: %v", ErrInternal, err)
	}

	// 4. Деактивированная страница недоступна публично
	if !page.IsActive {
		uc.logger.Warn("GetAvailableSlots: page slug=%s is inactive", req.Slug)
		return nil, ErrPageInactive
	}

	// 5. Получаем недельное расписание страницы
	windows, err := uc.scheduleRepo.ListWindows(ctx, page.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get windows for page id=%d: %v", page.ID, err)
		return nil, fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
	}

	// 6. Получаем исключения на запрошенную дату
	exceptions, err := uc.scheduleRepo.ListExceptionsByDate(ctx, page.ID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get exceptions for page id=%d: %v", page.ID, err)
		return nil, fmt.Errorf("%w: failed to get exceptions: %v", ErrInternal, err)
	}

	// 7. Получаем активные бронирования на эту дату
	filter := domain.PageBookingsFilter{
		PageID:          page.ID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Отменённые бронирования слот не занимают
	}

	bookings, err := uc.bookingRepo.GetByPageWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for page id=%d: %v", page.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Вычисляем доступные слоты
	slots := domain.ComputeSlots(page, windows, exceptions, bookings, req.Date, now)

	uc.logger.Info("GetAvailableSlots: computed %d slots for page id=%d, date=%s",
		len(slots), page.ID, req.Date.Format(domain.DateFormat))

	return &Response{
		PageID:              page.ID,
		Slug:                page.Slug,
		Date:                req.Date,
		Timezone:            page.Timezone,
		SlotDurationMinutes: page.SlotDurationMinutes,
		Slots:               toSlots(slots),
	}, nil
}

package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	bookingRepo "github.com/v0ronc/CRM-SchedulingService/internal/infra/storage/booking"
	pageRepo "github.com/v0ronc/CRM-SchedulingService/internal/infra/storage/page"
)

// UseCase use case для создания бронирования
type UseCase struct {
	pageRepo     PageRepository
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	pageRepo PageRepository,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		pageRepo:     pageRepo,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Доступность слота перевычисляется внутри сериализуемой транзакции
// тем же алгоритмом, что и выдача слотов: клиент мог держать страницу
// открытой сколько угодно, и проверка на момент отправки - единственная,
// которой можно верить. Вторая линия защиты - частичный уникальный
// индекс в БД: из двух конкурирующих вставок на один слот фиксируется
// ровно одна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slug=%s, date=%s, time=%s",
		req.Slug, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем страницу по slug
	page, err := uc.pageRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, pageRepo.ErrPageNotFound) {
			uc.logger.Warn("CreateBooking: page slug=%s not found", req.Slug)
			return nil, ErrPageNotFound
		}
		uc.logger.Error("CreateBooking: failed to get page slug=%s: %v", req.Slug, err)
		return nil, fmt.Errorf("%w: failed to get page: %v", ErrInternal, err)
	}

	// 4. Деактивированная страница не принимает бронирования
	if !page.IsActive {
		uc.logger.Warn("CreateBooking: page slug=%s is inactive", req.Slug)
		return nil, ErrPageInactive
	}

	// 5. Валидируем ответы на квалификационные поля страницы
	fields, err := uc.pageRepo.ListFields(ctx, page.ID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get fields for page id=%d: %v", page.ID, err)
		return nil, fmt.Errorf("%w: failed to get qualification fields: %v", ErrInternal, err)
	}

	if err := validateAnswers(fields, req.Answers); err != nil {
		uc.logger.Warn("CreateBooking: answers validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем проверку доступности и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем недельное расписание страницы
		windows, err := uc.scheduleRepo.ListWindows(txCtx, page.ID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get windows: %v", err)
			return fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
		}

		// 6.2. Получаем исключения на запрошенную дату
		exceptions, err := uc.scheduleRepo.ListExceptionsByDate(txCtx, page.ID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get exceptions: %v", err)
			return fmt.Errorf("%w: failed to get exceptions: %v", ErrInternal, err)
		}

		// 6.3. Получаем активные бронирования на эту дату с блокировкой (FOR UPDATE)
		filter := domain.PageBookingsFilter{
			PageID:          page.ID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false, // Только активные бронирования
		}

		bookings, err := uc.bookingRepo.GetByPageWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.4. Перевычисляем доступные слоты и проверяем, что запрошенный среди них
		slots := domain.ComputeSlots(page, windows, exceptions, bookings, req.Date, now)
		if !domain.ContainsStart(slots, req.StartTime) {
			uc.logger.Warn("CreateBooking: slot %s on %s is not available for page id=%d",
				req.StartTime, req.Date.Format(domain.DateFormat), page.ID)
			return ErrSlotNotAvailable
		}

		endTime, err := req.StartTime.AddMinutes(page.SlotDurationMinutes)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to compute end time: %v", err)
			return fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
		}

		// 6.5. Создаем бронирование
		booking := &domain.Booking{
			PageID:               page.ID,
			Reference:            uuid.New(),
			BookingDate:          req.Date,
			StartTime:            req.StartTime,
			EndTime:              endTime,
			Status:               domain.StatusConfirmed,
			ProspectName:         req.ProspectName,
			ProspectEmail:        req.ProspectEmail,
			ProspectPhone:        req.ProspectPhone,
			QualificationAnswers: req.Answers,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Конкурирующая вставка успела первой - слот занят
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s on %s already taken for page id=%d",
					req.StartTime, req.Date.Format(domain.DateFormat), page.ID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s", result.ID, result.Reference)

	return toResponse(result, page.Slug), nil
}

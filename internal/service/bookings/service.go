package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	bookingRepo "github.com/v0ronc/CRM-SchedulingService/internal/infra/storage/booking"
	pageRepo "github.com/v0ronc/CRM-SchedulingService/internal/infra/storage/page"
	"github.com/v0ronc/CRM-SchedulingService/internal/integrations/accountservice"
	"github.com/v0ronc/CRM-SchedulingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями (админские операции оператора)
type Service struct {
	pageRepo      PageRepository
	bookingRepo   BookingRepository
	accountClient AccountServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	pageRepo PageRepository,
	bookingRepo BookingRepository,
	accountClient AccountServiceClient,
	logger Logger,
) *Service {
	return &Service{
		pageRepo:      pageRepo,
		bookingRepo:   bookingRepo,
		accountClient: accountClient,
		logger:        logger,
	}
}

// GetPageBookings получает бронирования страницы с гибкой фильтрацией.
// Доступно только владельцу страницы.
//
// Примеры использования:
// - Все активные бронирования: GetPageBookings(ctx, &GetPageBookingsRequest{PageID: 1, UserID: 10})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetPageBookings(ctx context.Context, req *models.GetPageBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetPageBookings: fetching bookings for page=%d, user=%d", req.PageID, req.UserID)

	if _, err := s.getOwnedPage(ctx, req.PageID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetPageBookings: invalid filter for page=%d: %v", req.PageID, err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByPageWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetPageBookings: repository error for page=%d: %v", req.PageID, err)
		return nil, fmt.Errorf("%w: GetPageBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPageBookings: successfully fetched %d bookings for page=%d", len(bookings), req.PageID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus обновляет статус бронирования (только владелец страницы).
// Допустимы только переходы из confirmed; перевод в cancelled фиксирует
// время отмены.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	if err := s.validateOperator(ctx, req.UserID); err != nil {
		return err
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if _, err := s.getOwnedPage(ctx, booking.PageID, req.UserID); err != nil {
		return err
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return ErrInvalidTransition
	}

	if newStatus == domain.StatusCancelled {
		err = s.bookingRepo.Cancel(ctx, bookingID, "")
	} else {
		err = s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus)
	}
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Cancel отменяет бронирование с указанием причины (только владелец страницы).
// Отменённое бронирование освобождает свой слот.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if err := s.validateOperator(ctx, req.UserID); err != nil {
		return err
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if _, err := s.getOwnedPage(ctx, booking.PageID, req.UserID); err != nil {
		return err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if len(req.CancellationReason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: cancellationReason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

// validateOperator проверяет, что пользователь - активный оператор в AccountService.
// Мутации требуют живого AccountService: при его недоступности запись отклоняется.
// Чтение списка бронирований проверку не проходит - оно работает и при
// деградации AccountService
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

// getBooking получает бронирование по ID
func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("getBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getBooking: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getBooking - repository error: %v", ErrInternal, err)
	}
	return booking, nil
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

package create_booking

import (
	"context"
	"time"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
)

// PageRepository интерфейс репозитория страниц бронирования
type PageRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.BookingPage, error)
	ListFields(ctx context.Context, pageID int64) ([]domain.QualificationField, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListWindows(ctx context.Context, pageID int64) ([]domain.AvailabilityWindow, error)
	ListExceptionsByDate(ctx context.Context, pageID int64, date time.Time) ([]domain.Exception, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByPageWithFilter(ctx context.Context, filter domain.PageBookingsFilter) ([]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package bookings

import (
	"context"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	"github.com/v0ronc/CRM-SchedulingService/internal/integrations/accountservice"
)

// PageRepository интерфейс репозитория страниц (для проверки прав владельца)
type PageRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingPage, error)
}

// AccountServiceClient интерфейс клиента для AccountService
type AccountServiceClient interface {
	GetOperator(ctx context.Context, userID int64) (*accountservice.Operator, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByPageWithFilter(ctx context.Context, filter domain.PageBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

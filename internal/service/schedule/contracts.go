package schedule

import (
	"context"
	"time"

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

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListWindows(ctx context.Context, pageID int64) ([]domain.AvailabilityWindow, error)
	ReplaceWindows(ctx context.Context, pageID int64, windows []domain.AvailabilityWindow) ([]domain.AvailabilityWindow, error)
	ListExceptions(ctx context.Context, pageID int64, from time.Time) ([]domain.Exception, error)
	CreateException(ctx context.Context, exception *domain.Exception) (*domain.Exception, error)
	GetExceptionByID(ctx context.Context, id int64) (*domain.Exception, error)
	DeleteException(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

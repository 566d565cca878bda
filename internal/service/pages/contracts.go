package pages

import (
	"context"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	"github.com/v0ronc/CRM-SchedulingService/internal/integrations/accountservice"
)

// PageRepository интерфейс репозитория страниц бронирования
type PageRepository interface {
	Create(ctx context.Context, page *domain.BookingPage) (*domain.BookingPage, error)
	GetByID(ctx context.Context, id int64) (*domain.BookingPage, error)
	GetBySlug(ctx context.Context, slug string) (*domain.BookingPage, error)
	ListByOwner(ctx context.Context, ownerUserID int64) ([]*domain.BookingPage, error)
	Update(ctx context.Context, id int64, page *domain.BookingPage) (*domain.BookingPage, error)
	ListFields(ctx context.Context, pageID int64) ([]domain.QualificationField, error)
	ReplaceFields(ctx context.Context, pageID int64, fields []domain.QualificationField) ([]domain.QualificationField, error)
}

// AccountServiceClient интерфейс клиента для AccountService
type AccountServiceClient interface {
	GetOperator(ctx context.Context, userID int64) (*accountservice.Operator, error)
	GetOperatorWithGracefulDegradation(ctx context.Context, userID int64) (*accountservice.Operator, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

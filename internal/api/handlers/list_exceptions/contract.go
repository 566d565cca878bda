package list_exceptions

import (
	"context"

	"github.com/v0ronc/CRM-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListExceptions(ctx context.Context, pageID int64, userID int64) (*models.ExceptionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

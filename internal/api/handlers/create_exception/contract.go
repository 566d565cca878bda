package create_exception

import (
	"context"

	"github.com/v0ronc/CRM-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateException(ctx context.Context, pageID int64, req *models.CreateExceptionRequest) (*models.ExceptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

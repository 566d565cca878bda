package update_availability

import (
	"context"

	"github.com/v0ronc/CRM-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ReplaceAvailability(ctx context.Context, pageID int64, req *models.ReplaceAvailabilityRequest) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

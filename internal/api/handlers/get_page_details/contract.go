package get_page_details

import (
	"context"

	"github.com/v0ronc/CRM-SchedulingService/internal/service/pages/models"
)

type PageService interface {
	GetByID(ctx context.Context, id int64, userID int64) (*models.PageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

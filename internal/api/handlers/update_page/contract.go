package update_page

import (
	"context"

	"github.com/v0ronc/CRM-SchedulingService/internal/service/pages/models"
)

type PageService interface {
	Update(ctx context.Context, id int64, req *models.UpdatePageRequest) (*models.PageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

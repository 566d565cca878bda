package create_page

import (
	"context"

	"github.com/v0ronc/CRM-SchedulingService/internal/service/pages/models"
)

type PageService interface {
	Create(ctx context.Context, req *models.CreatePageRequest) (*models.PageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

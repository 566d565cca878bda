package list_pages

import (
	"context"

	"github.com/v0ronc/CRM-SchedulingService/internal/service/pages/models"
)

type PageService interface {
	ListByOwner(ctx context.Context, userID int64) (*models.PageListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

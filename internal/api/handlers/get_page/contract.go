package get_page

import (
	"context"

	"github.com/v0ronc/CRM-SchedulingService/internal/service/pages/models"
)

type PageService interface {
	GetPublicBySlug(ctx context.Context, slug string) (*models.PublicPageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

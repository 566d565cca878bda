package get_page_bookings

import (
	"context"

	"github.com/v0ronc/CRM-SchedulingService/internal/service/bookings/models"
)

type BookingService interface {
	GetPageBookings(ctx context.Context, req *models.GetPageBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

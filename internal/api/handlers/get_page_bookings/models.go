package get_page_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	"github.com/v0ronc/CRM-SchedulingService/internal/service/bookings/models"
)

// parseQuery разбирает query-параметры фильтра бронирований.
// Параметр date задаёт один день и несовместим со startDate/endDate.
func parseQuery(pageID, userID int64, query url.Values) (*models.GetPageBookingsRequest, error) {
	req := &models.GetPageBookingsRequest{
		UserID: userID,
		PageID: pageID,
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	if raw := query.Get("date"); raw != "" {
		if query.Get("startDate") != "" || query.Get("endDate") != "" {
			return nil, fmt.Errorf("date cannot be combined with startDate/endDate")
		}
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.StartDate = &date
		endDate := date
		req.EndDate = &endDate
		return req, nil
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %w", err)
		}
		req.EndDate = &endDate
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("endDate is before startDate")
	}

	return req, nil
}

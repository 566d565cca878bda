package get_page_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/v0ronc/CRM-SchedulingService/internal/api/handlers"
	"github.com/v0ronc/CRM-SchedulingService/internal/api/middleware"
	"github.com/v0ronc/CRM-SchedulingService/internal/service/bookings"
)

const (
	msgInvalidPageID = "некорректный ID страницы"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidFilter = "некорректные параметры фильтра"
	msgPageNotFound  = "страница не найдена"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/pages/{pageId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pageID, err := strconv.ParseInt(vars["pageId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /pages/{pageId}/bookings - Invalid page ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPageID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /pages/{pageId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := parseQuery(pageID, userID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /pages/{pageId}/bookings - Invalid filter: page_id=%d, error=%v", pageID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetPageBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrPageNotFound):
			h.logger.Warn("GET /pages/{pageId}/bookings - Page not found: page_id=%d", pageID)
			handlers.RespondNotFound(w, msgPageNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /pages/{pageId}/bookings - Access denied: page_id=%d, user_id=%d", pageID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /pages/{pageId}/bookings - Invalid filter: page_id=%d, error=%v", pageID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /pages/{pageId}/bookings - Failed to get bookings: page_id=%d, error=%v", pageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

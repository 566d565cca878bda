package get_page_details

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/v0ronc/CRM-SchedulingService/internal/api/handlers"
	"github.com/v0ronc/CRM-SchedulingService/internal/api/middleware"
	"github.com/v0ronc/CRM-SchedulingService/internal/service/pages"
)

const (
	msgInvalidPageID = "некорректный ID страницы"
	msgMissingUserID = "отсутствует ID пользователя"
	msgPageNotFound  = "страница не найдена"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service PageService
	logger  Logger
}

func NewHandler(service PageService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/pages/id/{pageId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pageID, err := strconv.ParseInt(vars["pageId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /pages/id/{pageId} - Invalid page ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPageID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /pages/id/{pageId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetByID(r.Context(), pageID, userID)
	if err != nil {
		switch {
		case errors.Is(err, pages.ErrPageNotFound):
			h.logger.Warn("GET /pages/id/{pageId} - Page not found: page_id=%d", pageID)
			handlers.RespondNotFound(w, msgPageNotFound)

		case errors.Is(err, pages.ErrAccessDenied):
			h.logger.Warn("GET /pages/id/{pageId} - Access denied: page_id=%d, user_id=%d", pageID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /pages/id/{pageId} - Failed to get page: page_id=%d, error=%v", pageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

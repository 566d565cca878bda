package update_page

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/v0ronc/CRM-SchedulingService/internal/api/handlers"
	"github.com/v0ronc/CRM-SchedulingService/internal/api/middleware"
	"github.com/v0ronc/CRM-SchedulingService/internal/service/pages"
	"github.com/v0ronc/CRM-SchedulingService/internal/service/pages/models"
)

const (
	msgInvalidPageID = "некорректный ID страницы"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidBody   = "некорректное тело запроса"
	msgPageNotFound  = "страница не найдена"
	msgForbidden     = "доступ запрещен"
	msgInvalidInput  = "некорректные данные страницы"
	msgSlugTaken     = "не удалось подобрать свободный slug"
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

// Handle PATCH /api/v1/pages/{pageId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pageID, err := strconv.ParseInt(vars["pageId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /pages/{pageId} - Invalid page ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPageID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /pages/{pageId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdatePageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /pages/{pageId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Update(r.Context(), pageID, &req)
	if err != nil {
		switch {
		case errors.Is(err, pages.ErrPageNotFound):
			h.logger.Warn("PATCH /pages/{pageId} - Page not found: page_id=%d", pageID)
			handlers.RespondNotFound(w, msgPageNotFound)

		case errors.Is(err, pages.ErrAccessDenied):
			h.logger.Warn("PATCH /pages/{pageId} - Access denied: page_id=%d, user_id=%d", pageID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, pages.ErrInvalidInput):
			h.logger.Warn("PATCH /pages/{pageId} - Invalid input: page_id=%d, error=%v", pageID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, pages.ErrSlugTaken):
			h.logger.Warn("PATCH /pages/{pageId} - Slug taken: page_id=%d", pageID)
			handlers.RespondError(w, http.StatusConflict, msgSlugTaken)

		default:
			h.logger.Error("PATCH /pages/{pageId} - Failed to update page: page_id=%d, error=%v", pageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /pages/{pageId} - Page updated: page_id=%d", pageID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package create_exception

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/v0ronc/CRM-SchedulingService/internal/api/handlers"
	"github.com/v0ronc/CRM-SchedulingService/internal/api/middleware"
	"github.com/v0ronc/CRM-SchedulingService/internal/service/schedule"
	"github.com/v0ronc/CRM-SchedulingService/internal/service/schedule/models"
)

const (
	msgInvalidPageID = "некорректный ID страницы"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidBody   = "некорректное тело запроса"
	msgPageNotFound  = "страница не найдена"
	msgForbidden     = "доступ запрещен"
	msgInvalidInput  = "некорректные данные исключения"
	msgDateConflict  = "исключение на эту дату уже существует"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/pages/{pageId}/exceptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pageID, err := strconv.ParseInt(vars["pageId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /pages/{pageId}/exceptions - Invalid page ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPageID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /pages/{pageId}/exceptions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pages/{pageId}/exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.UserID = userID

	result, err := h.service.CreateException(r.Context(), pageID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrPageNotFound):
			h.logger.Warn("POST /pages/{pageId}/exceptions - Page not found: page_id=%d", pageID)
			handlers.RespondNotFound(w, msgPageNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /pages/{pageId}/exceptions - Access denied: page_id=%d, user_id=%d", pageID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /pages/{pageId}/exceptions - Invalid input: page_id=%d, error=%v", pageID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, schedule.ErrExceptionExists):
			h.logger.Warn("POST /pages/{pageId}/exceptions - Date already blocked: page_id=%d, date=%s", pageID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDateConflict)

		default:
			h.logger.Error("POST /pages/{pageId}/exceptions - Failed to create exception: page_id=%d, error=%v", pageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pages/{pageId}/exceptions - Exception created: page_id=%d, date=%s",
		pageID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

package create_page

import (
	"errors"
	"net/http"

	"github.com/v0ronc/CRM-SchedulingService/internal/api/handlers"
	"github.com/v0ronc/CRM-SchedulingService/internal/api/middleware"
	"github.com/v0ronc/CRM-SchedulingService/internal/service/pages"
	"github.com/v0ronc/CRM-SchedulingService/internal/service/pages/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные страницы"
	msgSlugTaken          = "не удалось подобрать свободный slug"
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

// Handle POST /api/v1/pages
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /pages - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreatePageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pages - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, pages.ErrInvalidInput):
			h.logger.Warn("POST /pages - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, pages.ErrSlugTaken):
			h.logger.Warn("POST /pages - No free slug: user_id=%d, title=%q", userID, req.Title)
			handlers.RespondError(w, http.StatusConflict, msgSlugTaken)

		default:
			h.logger.Error("POST /pages - Failed to create page: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pages - Page created successfully: page_id=%d, slug=%s, user_id=%d",
		result.ID, result.Slug, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

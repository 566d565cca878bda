package get_page

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/v0ronc/CRM-SchedulingService/internal/api/handlers"
	"github.com/v0ronc/CRM-SchedulingService/internal/service/pages"
)

const (
	msgMissingSlug  = "отсутствует slug страницы"
	msgPageNotFound = "страница не найдена"
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

// Handle GET /api/v1/pages/{slug}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]
	if slug == "" {
		handlers.RespondBadRequest(w, msgMissingSlug)
		return
	}

	result, err := h.service.GetPublicBySlug(r.Context(), slug)
	if err != nil {
		switch {
		// Деактивированная страница публично неотличима от несуществующей
		case errors.Is(err, pages.ErrPageNotFound), errors.Is(err, pages.ErrPageInactive):
			h.logger.Warn("GET /pages/{slug} - Page not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgPageNotFound)

		default:
			h.logger.Error("GET /pages/{slug} - Failed to get page: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

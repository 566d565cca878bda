package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/v0ronc/CRM-SchedulingService/internal/api/handlers"
	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	getAvailableSlots "github.com/v0ronc/CRM-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgMissingSlug  = "отсутствует slug страницы"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPageNotFound = "страница не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/pages/{slug}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]
	if slug == "" {
		handlers.RespondBadRequest(w, msgMissingSlug)
		return
	}

	dateStr := r.URL.Query().Get("date")
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /pages/{slug}/available-slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		Slug: slug,
		Date: date,
	})
	if err != nil {
		switch {
		// Деактивированная страница публично неотличима от несуществующей
		case errors.Is(err, getAvailableSlots.ErrPageNotFound), errors.Is(err, getAvailableSlots.ErrPageInactive):
			h.logger.Warn("GET /pages/{slug}/available-slots - Page not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgPageNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /pages/{slug}/available-slots - Failed: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package create_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/v0ronc/CRM-SchedulingService/internal/api/handlers"
	createBooking "github.com/v0ronc/CRM-SchedulingService/internal/usecase/create_booking"
)

const (
	msgMissingSlug        = "отсутствует slug страницы"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgPageNotFound       = "страница не найдена"
	msgMissingAnswer      = "не заполнено обязательное поле формы"
	msgInvalidAnswer      = "некорректный ответ на поле формы"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/pages/{slug}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]
	if slug == "" {
		handlers.RespondBadRequest(w, msgMissingSlug)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pages/{slug}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(slug)
	if err != nil {
		h.logger.Warn("POST /pages/{slug}/bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /pages/{slug}/bookings - Slot not available: slug=%s, date=%s, time=%s",
				slug, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		// Деактивированная страница публично неотличима от несуществующей
		case errors.Is(err, createBooking.ErrPageNotFound), errors.Is(err, createBooking.ErrPageInactive):
			h.logger.Warn("POST /pages/{slug}/bookings - Page not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgPageNotFound)

		case errors.Is(err, createBooking.ErrMissingRequiredAnswer):
			h.logger.Warn("POST /pages/{slug}/bookings - Missing required answer: slug=%s", slug)
			handlers.RespondBadRequest(w, msgMissingAnswer)

		case errors.Is(err, createBooking.ErrInvalidAnswer):
			h.logger.Warn("POST /pages/{slug}/bookings - Invalid answer: slug=%s", slug)
			handlers.RespondBadRequest(w, msgInvalidAnswer)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /pages/{slug}/bookings - Invalid input: slug=%s, error=%v", slug, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /pages/{slug}/bookings - Failed to create booking: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pages/{slug}/bookings - Booking created successfully: reference=%s, slug=%s",
		result.Reference, slug)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

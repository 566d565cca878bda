package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	"github.com/v0ronc/CRM-SchedulingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Slug      string           // Публичный slug страницы бронирования
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")

	ProspectName  string  // Имя клиента
	ProspectEmail string  // Email клиента
	ProspectPhone *string // Телефон клиента (опционально)

	// Ответы на квалификационные поля страницы, ключ - ID поля
	Answers map[string]string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64     // ID созданного бронирования
	Reference uuid.UUID // Публичный референс бронирования
	PageID    int64     // ID страницы
	Slug      string    // Slug страницы

	BookingDate time.Time        // Дата бронирования
	StartTime   types.TimeString // Время начала
	EndTime     types.TimeString // Время конца
	Status      string           // Статус бронирования

	ProspectName  string  // Имя клиента
	ProspectEmail string  // Email клиента
	ProspectPhone *string // Телефон клиента

	Answers map[string]string // Ответы на квалификационные поля

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

// toResponse конвертирует доменное бронирование в модель ответа
func toResponse(booking *domain.Booking, slug string) *Response {
	return &Response{
		ID:            booking.ID,
		Reference:     booking.Reference,
		PageID:        booking.PageID,
		Slug:          slug,
		BookingDate:   booking.BookingDate,
		StartTime:     booking.StartTime,
		EndTime:       booking.EndTime,
		Status:        string(booking.Status),
		ProspectName:  booking.ProspectName,
		ProspectEmail: booking.ProspectEmail,
		ProspectPhone: booking.ProspectPhone,
		Answers:       booking.QualificationAnswers,
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}
}

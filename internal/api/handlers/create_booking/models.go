package create_booking

import (
	"time"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	createBooking "github.com/v0ronc/CRM-SchedulingService/internal/usecase/create_booking"
	"github.com/v0ronc/CRM-SchedulingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date      string `json:"date"`      // "2026-03-09"
	StartTime string `json:"startTime"` // "10:00"

	ProspectName  string  `json:"prospectName"`
	ProspectEmail string  `json:"prospectEmail"`
	ProspectPhone *string `json:"prospectPhone,omitempty"`

	// Ответы на квалификационные поля страницы, ключ - ID поля
	Answers map[string]string `json:"answers,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Reference string `json:"reference"`
	Slug      string `json:"slug"`

	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`

	ProspectName  string  `json:"prospectName"`
	ProspectEmail string  `json:"prospectEmail"`
	ProspectPhone *string `json:"prospectPhone,omitempty"`

	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(slug string) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Slug:          slug,
		Date:          date,
		StartTime:     startTime,
		ProspectName:  r.ProspectName,
		ProspectEmail: r.ProspectEmail,
		ProspectPhone: r.ProspectPhone,
		Answers:       r.Answers,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// Наружу уходит публичный reference, внутренний ID не раскрывается.
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		Reference:     resp.Reference.String(),
		Slug:          resp.Slug,
		Date:          resp.BookingDate.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		Status:        resp.Status,
		ProspectName:  resp.ProspectName,
		ProspectEmail: resp.ProspectEmail,
		ProspectPhone: resp.ProspectPhone,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}

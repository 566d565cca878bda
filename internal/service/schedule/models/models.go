package models

import (
	"time"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	"github.com/v0ronc/CRM-SchedulingService/pkg/types"
)

// Request модели

// WindowRequest окно доступности в запросе на обновление расписания
type WindowRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 - воскресенье ... 6 - суббота
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "18:00"
}

// ReplaceAvailabilityRequest запрос на замену недельного расписания страницы
type ReplaceAvailabilityRequest struct {
	UserID  int64           `json:"-"`
	Windows []WindowRequest `json:"windows"`
}

// CreateExceptionRequest запрос на создание исключения (выходного дня)
type CreateExceptionRequest struct {
	UserID int64   `json:"-"`
	Date   string  `json:"date"` // "2026-03-09"
	Reason *string `json:"reason,omitempty"`
}

// Response модели

// WindowResponse окно доступности страницы
type WindowResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailabilityResponse недельное расписание страницы
type AvailabilityResponse struct {
	PageID  int64            `json:"pageId"`
	Windows []WindowResponse `json:"windows"`
}

// ExceptionResponse исключение из расписания
type ExceptionResponse struct {
	ID        int64     `json:"id"`
	PageID    int64     `json:"pageId"`
	Date      string    `json:"date"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExceptionListResponse список исключений страницы
type ExceptionListResponse struct {
	Exceptions []ExceptionResponse `json:"exceptions"`
}

// Методы конвертации

// ToDomainWindows конвертирует окна запроса в domain модели
func ToDomainWindows(windows []WindowRequest) []domain.AvailabilityWindow {
	result := make([]domain.AvailabilityWindow, 0, len(windows))
	for _, w := range windows {
		result = append(result, domain.AvailabilityWindow{
			DayOfWeek: w.DayOfWeek,
			StartTime: types.TimeString(w.StartTime),
			EndTime:   types.TimeString(w.EndTime),
		})
	}
	return result
}

// FromDomainWindows конвертирует окна в DTO
func FromDomainWindows(pageID int64, windows []domain.AvailabilityWindow) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		PageID:  pageID,
		Windows: make([]WindowResponse, 0, len(windows)),
	}
	for _, w := range windows {
		resp.Windows = append(resp.Windows, WindowResponse{
			ID:        w.ID,
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
		})
	}
	return resp
}

// FromDomainException конвертирует исключение в DTO
func FromDomainException(e *domain.Exception) *ExceptionResponse {
	if e == nil {
		return nil
	}
	return &ExceptionResponse{
		ID:        e.ID,
		PageID:    e.PageID,
		Date:      e.ExceptionDate.Format(domain.DateFormat),
		Reason:    e.Reason,
		CreatedAt: e.CreatedAt,
	}
}

// FromDomainExceptionList конвертирует список исключений в DTO
func FromDomainExceptionList(exceptions []domain.Exception) *ExceptionListResponse {
	resp := &ExceptionListResponse{Exceptions: make([]ExceptionResponse, 0, len(exceptions))}
	for i := range exceptions {
		resp.Exceptions = append(resp.Exceptions, *FromDomainException(&exceptions[i]))
	}
	return resp
}

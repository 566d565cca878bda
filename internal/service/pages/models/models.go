package models

import (
	"time"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	"github.com/v0ronc/CRM-SchedulingService/internal/integrations/accountservice"
)

// Request модели

// FieldRequest квалификационное поле в запросе на создание/обновление страницы
type FieldRequest struct {
	Label      string   `json:"label"`
	Type       string   `json:"type"`
	Options    []string `json:"options,omitempty"`
	IsRequired bool     `json:"isRequired"`
	Position   int      `json:"position"`
}

// CreatePageRequest запрос на создание страницы бронирования
type CreatePageRequest struct {
	UserID      int64   `json:"-"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`

	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
	BufferMinutes       *int    `json:"bufferMinutes,omitempty"`
	MinNoticeHours      *int    `json:"minNoticeHours,omitempty"`
	MaxDaysAhead        *int    `json:"maxDaysAhead,omitempty"`
	Timezone            *string `json:"timezone,omitempty"`

	Fields []FieldRequest `json:"fields,omitempty"`
}

// UpdatePageRequest запрос на обновление страницы бронирования.
// Nil-поля не изменяются.
type UpdatePageRequest struct {
	UserID      int64   `json:"-"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`

	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
	BufferMinutes       *int    `json:"bufferMinutes,omitempty"`
	MinNoticeHours      *int    `json:"minNoticeHours,omitempty"`
	MaxDaysAhead        *int    `json:"maxDaysAhead,omitempty"`
	Timezone            *string `json:"timezone,omitempty"`
	IsActive            *bool   `json:"isActive,omitempty"`

	// Nil - поля не трогаем, пустой слайс - удаляем все поля
	Fields *[]FieldRequest `json:"fields,omitempty"`
}

// Response модели

// FieldResponse квалификационное поле страницы
type FieldResponse struct {
	ID         int64    `json:"id"`
	Label      string   `json:"label"`
	Type       string   `json:"type"`
	Options    []string `json:"options,omitempty"`
	IsRequired bool     `json:"isRequired"`
	Position   int      `json:"position"`
}

// PageResponse ответ с данными страницы (админский, с полной политикой)
type PageResponse struct {
	ID          int64   `json:"id"`
	OwnerUserID int64   `json:"ownerUserId"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`

	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	BufferMinutes       int    `json:"bufferMinutes"`
	MinNoticeHours      int    `json:"minNoticeHours"`
	MaxDaysAhead        int    `json:"maxDaysAhead"`
	Timezone            string `json:"timezone"`
	IsActive            bool   `json:"isActive"`

	Fields []FieldResponse `json:"fields"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PageListResponse ответ со списком страниц оператора
type PageListResponse struct {
	Pages []PageResponse `json:"pages"`
}

// OperatorResponse карточка оператора на публичной странице
type OperatorResponse struct {
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// PublicPageResponse публичное представление страницы бронирования.
// Не раскрывает владельца и внутреннюю политику, кроме длительности слота.
type PublicPageResponse struct {
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`

	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	Timezone            string `json:"timezone"`

	// Nil при недоступности AccountService (graceful degradation)
	Operator *OperatorResponse `json:"operator,omitempty"`

	Fields []FieldResponse `json:"fields"`
}

// Методы конвертации

// FromDomainPage конвертирует domain модель в DTO
func FromDomainPage(p *domain.BookingPage, fields []domain.QualificationField) *PageResponse {
	if p == nil {
		return nil
	}

	return &PageResponse{
		ID:                  p.ID,
		OwnerUserID:         p.OwnerUserID,
		Slug:                p.Slug,
		Title:               p.Title,
		Description:         p.Description,
		SlotDurationMinutes: p.SlotDurationMinutes,
		BufferMinutes:       p.BufferMinutes,
		MinNoticeHours:      p.MinNoticeHours,
		MaxDaysAhead:        p.MaxDaysAhead,
		Timezone:            p.Timezone,
		IsActive:            p.IsActive,
		Fields:              FromDomainFields(fields),
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// FromDomainPublicPage конвертирует domain модель в публичное DTO
func FromDomainPublicPage(p *domain.BookingPage, fields []domain.QualificationField, operator *accountservice.Operator) *PublicPageResponse {
	if p == nil {
		return nil
	}

	resp := &PublicPageResponse{
		Slug:                p.Slug,
		Title:               p.Title,
		Description:         p.Description,
		SlotDurationMinutes: p.SlotDurationMinutes,
		Timezone:            p.Timezone,
		Fields:              FromDomainFields(fields),
	}

	if operator != nil {
		resp.Operator = &OperatorResponse{
			DisplayName: operator.DisplayName,
			AvatarURL:   operator.AvatarURL,
		}
	}

	return resp
}

// FromDomainFields конвертирует список полей в DTO
func FromDomainFields(fields []domain.QualificationField) []FieldResponse {
	result := make([]FieldResponse, 0, len(fields))
	for _, f := range fields {
		result = append(result, FieldResponse{
			ID:         f.ID,
			Label:      f.Label,
			Type:       string(f.Type),
			Options:    f.Options,
			IsRequired: f.IsRequired,
			Position:   f.Position,
		})
	}
	return result
}

// ToDomainFields конвертирует поля запроса в domain модели
func ToDomainFields(fields []FieldRequest) []domain.QualificationField {
	result := make([]domain.QualificationField, 0, len(fields))
	for _, f := range fields {
		result = append(result, domain.QualificationField{
			Label:      f.Label,
			Type:       domain.FieldType(f.Type),
			Options:    f.Options,
			IsRequired: f.IsRequired,
			Position:   f.Position,
		})
	}
	return result
}

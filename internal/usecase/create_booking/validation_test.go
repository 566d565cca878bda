package create_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	"github.com/v0ronc/CRM-SchedulingService/pkg/ptr"
)

func TestValidateRequest(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{
			name:   "valid request",
			mutate: func(r *Request) {},
		},
		{
			name:    "missing slug",
			mutate:  func(r *Request) { r.Slug = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing date",
			mutate:  func(r *Request) { r.Date = time.Time{} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing start time",
			mutate:  func(r *Request) { r.StartTime = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "malformed start time",
			mutate:  func(r *Request) { r.StartTime = "10:0" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "blank prospect name",
			mutate:  func(r *Request) { r.ProspectName = "   " },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "invalid email",
			mutate:  func(r *Request) { r.ProspectEmail = "not-an-email" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "invalid phone",
			mutate:  func(r *Request) { r.ProspectPhone = ptr.Ptr("abc") },
			wantErr: ErrInvalidInput,
		},
		{
			name:   "valid phone",
			mutate: func(r *Request) { r.ProspectPhone = ptr.Ptr("+7 (912) 345-67-89") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &Request{
				Slug:          "intro-call",
				Date:          date,
				StartTime:     "10:00",
				ProspectName:  "Jane Roe",
				ProspectEmail: "jane@example.com",
			}
			tt.mutate(req)

			err := validateRequest(req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAnswers(t *testing.T) {
	fields := []domain.QualificationField{
		{ID: 1, Label: "Company", Type: domain.FieldText, IsRequired: true},
		{ID: 2, Label: "Work email", Type: domain.FieldEmail},
		{ID: 3, Label: "Team size", Type: domain.FieldSelect, Options: []string{"1-10", "11-50"}},
	}

	t.Run("all answers valid", func(t *testing.T) {
		err := validateAnswers(fields, map[string]string{
			"1": "Acme",
			"2": "jane@acme.com",
			"3": "1-10",
		})
		assert.NoError(t, err)
	})

	t.Run("optional fields may be omitted", func(t *testing.T) {
		err := validateAnswers(fields, map[string]string{"1": "Acme"})
		assert.NoError(t, err)
	})

	t.Run("required field missing", func(t *testing.T) {
		err := validateAnswers(fields, map[string]string{"2": "jane@acme.com"})
		assert.ErrorIs(t, err, ErrMissingRequiredAnswer)
	})

	t.Run("required field blank", func(t *testing.T) {
		err := validateAnswers(fields, map[string]string{"1": "   "})
		assert.ErrorIs(t, err, ErrMissingRequiredAnswer)
	})

	t.Run("invalid email answer", func(t *testing.T) {
		err := validateAnswers(fields, map[string]string{"1": "Acme", "2": "nope"})
		assert.ErrorIs(t, err, ErrInvalidAnswer)
	})

	t.Run("unknown select option", func(t *testing.T) {
		err := validateAnswers(fields, map[string]string{"1": "Acme", "3": "51-200"})
		assert.ErrorIs(t, err, ErrInvalidAnswer)
	})

	t.Run("answer for unknown field", func(t *testing.T) {
		err := validateAnswers(fields, map[string]string{"1": "Acme", "99": "x"})
		assert.ErrorIs(t, err, ErrInvalidAnswer)
	})

	t.Run("no fields no answers", func(t *testing.T) {
		err := validateAnswers(nil, nil)
		assert.NoError(t, err)
	})
}

package create_booking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Slug == "" {
		return fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.ProspectName) == "" {
		return fmt.Errorf("%w: prospectName is required", ErrInvalidInput)
	}

	if !domain.ValidEmail(req.ProspectEmail) {
		return fmt.Errorf("%w: invalid prospectEmail", ErrInvalidInput)
	}

	if req.ProspectPhone != nil && !domain.ValidPhone(*req.ProspectPhone) {
		return fmt.Errorf("%w: invalid prospectPhone", ErrInvalidInput)
	}

	return nil
}

// validateAnswers проверяет ответы на квалификационные поля страницы:
// все обязательные поля должны быть заполнены, каждый ответ должен
// проходить валидацию типа поля, ответы на несуществующие поля отклоняются
func validateAnswers(fields []domain.QualificationField, answers map[string]string) error {
	known := make(map[string]domain.QualificationField, len(fields))
	for _, field := range fields {
		known[strconv.FormatInt(field.ID, 10)] = field
	}

	for key := range answers {
		if _, ok := known[key]; !ok {
			return fmt.Errorf("%w: unknown field id %q", ErrInvalidAnswer, key)
		}
	}

	for key, field := range known {
		answer, ok := answers[key]
		answer = strings.TrimSpace(answer)

		if !ok || answer == "" {
			if field.IsRequired {
				return fmt.Errorf("%w: field %q", ErrMissingRequiredAnswer, field.Label)
			}
			continue
		}

		if err := field.Validate(answer); err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrInvalidAnswer, field.Label, err)
		}
	}

	return nil
}

package page

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	"github.com/v0ronc/CRM-SchedulingService/pkg/dbmetrics"
	"github.com/v0ronc/CRM-SchedulingService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникального ограничения
const uniqueViolation = "23505"

var pageColumns = []string{
	"id",
	"owner_user_id",
	"slug",
	"title",
	"description",
	"slot_duration_minutes",
	"buffer_minutes",
	"min_notice_hours",
	"max_days_ahead",
	"timezone",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий страниц бронирования и их квалификационных полей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория страниц
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую страницу бронирования.
// Уникальность slug обеспечивается ограничением в БД.
func (r *Repository) Create(ctx context.Context, page *domain.BookingPage) (*domain.BookingPage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_pages").
		Columns(
			"owner_user_id",
			"slug",
			"title",
			"description",
			"slot_duration_minutes",
			"buffer_minutes",
			"min_notice_hours",
			"max_days_ahead",
			"timezone",
			"is_active",
		).
		Values(
			page.OwnerUserID,
			page.Slug,
			page.Title,
			page.Description,
			page.SlotDurationMinutes,
			page.BufferMinutes,
			page.MinNoticeHours,
			page.MaxDaysAhead,
			page.Timezone,
			page.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&page.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	page.CreatedAt = createdAt.Time
	page.UpdatedAt = updatedAt.Time

	return page, nil
}

// GetByID получает страницу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingPage, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetBySlug получает страницу по публичному slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.BookingPage, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug})
}

// ListByOwner получает все страницы оператора
func (r *Repository) ListByOwner(ctx context.Context, ownerUserID int64) ([]*domain.BookingPage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(pageColumns...).
		From("booking_pages").
		Where(squirrel.Eq{"owner_user_id": ownerUserID}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	pages := make([]*domain.BookingPage, 0)
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - rows error: %v", ErrScanRow, err)
	}

	return pages, nil
}

// Update обновляет атрибуты и политику страницы
func (r *Repository) Update(ctx context.Context, id int64, page *domain.BookingPage) (*domain.BookingPage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_pages").
		Set("slug", page.Slug).
		Set("title", page.Title).
		Set("description", page.Description).
		Set("slot_duration_minutes", page.SlotDurationMinutes).
		Set("buffer_minutes", page.BufferMinutes).
		Set("min_notice_hours", page.MinNoticeHours).
		Set("max_days_ahead", page.MaxDaysAhead).
		Set("timezone", page.Timezone).
		Set("is_active", page.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrPageNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	page.ID = id
	page.CreatedAt = createdAt.Time
	page.UpdatedAt = updatedAt.Time

	return page, nil
}

// ListFields получает квалификационные поля страницы в порядке отображения
func (r *Repository) ListFields(ctx context.Context, pageID int64) ([]domain.QualificationField, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"page_id",
		"label",
		"field_type",
		"options",
		"is_required",
		"position",
	).
		From("qualification_fields").
		Where(squirrel.Eq{"page_id": pageID}).
		OrderBy("position ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListFields - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFields - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	fields := make([]domain.QualificationField, 0)
	for rows.Next() {
		var field domain.QualificationField
		var options pq.StringArray

		err := rows.Scan(
			&field.ID,
			&field.PageID,
			&field.Label,
			&field.Type,
			&options,
			&field.IsRequired,
			&field.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListFields - scan row: %v", ErrScanRow, err)
		}

		field.Options = []string(options)
		fields = append(fields, field)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListFields - rows error: %v", ErrScanRow, err)
	}

	return fields, nil
}

// ReplaceFields заменяет весь набор квалификационных полей страницы.
// Вызывается внутри транзакции (admin), чтобы форма не была видна наполовину обновлённой.
func (r *Repository) ReplaceFields(ctx context.Context, pageID int64, fields []domain.QualificationField) ([]domain.QualificationField, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("qualification_fields").
		Where(squirrel.Eq{"page_id": pageID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceFields - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceFields - execute delete: %v", ErrExecQuery, err)
	}

	result := make([]domain.QualificationField, 0, len(fields))
	for i := range fields {
		field := fields[i]
		field.PageID = pageID

		query, args, err := psqlbuilder.Insert("qualification_fields").
			Columns("page_id", "label", "field_type", "options", "is_required", "position").
			Values(
				field.PageID,
				field.Label,
				field.Type,
				pq.Array(field.Options),
				field.IsRequired,
				field.Position,
			).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: ReplaceFields - build insert query: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, query, args...).Scan(&field.ID); err != nil {
			return nil, fmt.Errorf("%w: ReplaceFields - execute insert: %v", ErrExecQuery, err)
		}

		result = append(result, field)
	}

	return result, nil
}

// getOne получает одну страницу по условию
func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.BookingPage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(pageColumns...).
		From("booking_pages").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var page domain.BookingPage
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&page.ID,
		&page.OwnerUserID,
		&page.Slug,
		&page.Title,
		&page.Description,
		&page.SlotDurationMinutes,
		&page.BufferMinutes,
		&page.MinNoticeHours,
		&page.MaxDaysAhead,
		&page.Timezone,
		&page.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan page: %v", ErrScanRow, err)
	}

	page.CreatedAt = createdAt.Time
	page.UpdatedAt = updatedAt.Time

	return &page, nil
}

// scanPage сканирует строку результата в страницу
func scanPage(rows *sql.Rows) (*domain.BookingPage, error) {
	var page domain.BookingPage
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&page.ID,
		&page.OwnerUserID,
		&page.Slug,
		&page.Title,
		&page.Description,
		&page.SlotDurationMinutes,
		&page.BufferMinutes,
		&page.MinNoticeHours,
		&page.MaxDaysAhead,
		&page.Timezone,
		&page.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scanPage - scan row: %v", ErrScanRow, err)
	}

	page.CreatedAt = createdAt.Time
	page.UpdatedAt = updatedAt.Time

	return &page, nil
}

// isUniqueViolation проверяет, что ошибка - нарушение уникального ограничения
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}

package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/v0ronc/CRM-SchedulingService/internal/domain"
	"github.com/v0ronc/CRM-SchedulingService/pkg/dbmetrics"
	"github.com/v0ronc/CRM-SchedulingService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникального ограничения
const uniqueViolation = "23505"

// Repository репозиторий недельного расписания и исключений страницы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListWindows получает окна доступности страницы.
// Окна отсортированы по дню недели и времени начала.
func (r *Repository) ListWindows(ctx context.Context, pageID int64) ([]domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"page_id",
		"day_of_week",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("availability_windows").
		Where(squirrel.Eq{"page_id": pageID}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.AvailabilityWindow, 0)
	for rows.Next() {
		var w domain.AvailabilityWindow
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&w.ID,
			&w.PageID,
			&w.DayOfWeek,
			&w.StartTime,
			&w.EndTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWindows - scan row: %v", ErrScanRow, err)
		}

		w.CreatedAt = createdAt.Time
		w.UpdatedAt = updatedAt.Time
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// ReplaceWindows заменяет всё недельное расписание страницы.
// Вызывается внутри транзакции, чтобы расписание не читалось наполовину обновлённым.
func (r *Repository) ReplaceWindows(ctx context.Context, pageID int64, windows []domain.AvailabilityWindow) ([]domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.Eq{"page_id": pageID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceWindows - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceWindows - execute delete: %v", ErrExecQuery, err)
	}

	result := make([]domain.AvailabilityWindow, 0, len(windows))
	for i := range windows {
		w := windows[i]
		w.PageID = pageID

		query, args, err := psqlbuilder.Insert("availability_windows").
			Columns("page_id", "day_of_week", "start_time", "end_time").
			Values(w.PageID, w.DayOfWeek, w.StartTime, w.EndTime).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: ReplaceWindows - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt, updatedAt sql.NullTime
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ReplaceWindows - execute insert: %v", ErrExecQuery, err)
		}

		w.CreatedAt = createdAt.Time
		w.UpdatedAt = updatedAt.Time
		result = append(result, w)
	}

	return result, nil
}

// ListExceptions получает все исключения страницы начиная с указанной даты
func (r *Repository) ListExceptions(ctx context.Context, pageID int64, from time.Time) ([]domain.Exception, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"page_id",
		"exception_date",
		"reason",
		"created_at",
	).
		From("page_exceptions").
		Where(squirrel.Eq{"page_id": pageID}).
		Where(squirrel.GtOrEq{"exception_date": from}).
		OrderBy("exception_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptions - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryExceptions(ctx, executor, query, args, "ListExceptions")
}

// ListExceptionsByDate получает исключения страницы на конкретную дату
func (r *Repository) ListExceptionsByDate(ctx context.Context, pageID int64, date time.Time) ([]domain.Exception, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"page_id",
		"exception_date",
		"reason",
		"created_at",
	).
		From("page_exceptions").
		Where(squirrel.Eq{"page_id": pageID, "exception_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExceptionsByDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryExceptions(ctx, executor, query, args, "ListExceptionsByDate")
}

// CreateException создает исключение (выходной день) для страницы
func (r *Repository) CreateException(ctx context.Context, exception *domain.Exception) (*domain.Exception, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("page_exceptions").
		Columns("page_id", "exception_date", "reason").
		Values(exception.PageID, exception.ExceptionDate, exception.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateException - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&exception.ID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrExceptionExists
		}
		return nil, fmt.Errorf("%w: CreateException - execute insert: %v", ErrExecQuery, err)
	}

	exception.CreatedAt = createdAt.Time

	return exception, nil
}

// GetExceptionByID получает исключение по ID
func (r *Repository) GetExceptionByID(ctx context.Context, id int64) (*domain.Exception, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"page_id",
		"exception_date",
		"reason",
		"created_at",
	).
		From("page_exceptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionByID - build select query: %v", ErrBuildQuery, err)
	}

	var e domain.Exception
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&e.ID,
		&e.PageID,
		&e.ExceptionDate,
		&e.Reason,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrExceptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionByID - scan exception: %v", ErrScanRow, err)
	}

	e.CreatedAt = createdAt.Time

	return &e, nil
}

// DeleteException удаляет исключение по ID
func (r *Repository) DeleteException(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("page_exceptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteException - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteException - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteException - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}

// queryExceptions выполняет запрос и сканирует список исключений
func (r *Repository) queryExceptions(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) ([]domain.Exception, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	exceptions := make([]domain.Exception, 0)
	for rows.Next() {
		var e domain.Exception
		var createdAt sql.NullTime

		err := rows.Scan(
			&e.ID,
			&e.PageID,
			&e.ExceptionDate,
			&e.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		e.CreatedAt = createdAt.Time
		exceptions = append(exceptions, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return exceptions, nil
}

// isUniqueViolation проверяет, что ошибка - нарушение уникального ограничения
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}

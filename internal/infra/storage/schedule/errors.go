package schedule

import "errors"

var (
	// ErrExceptionNotFound исключение расписания не найдено
	ErrExceptionNotFound = errors.New("schedule.repository: exception not found")

	// ErrExceptionExists исключение на эту дату уже существует
	ErrExceptionExists = errors.New("schedule.repository: exception already exists")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)

package pages

import "errors"

var (
	// ErrPageNotFound возвращается, когда страница бронирования не найдена
	ErrPageNotFound = errors.New("page not found")

	// ErrPageInactive возвращается, когда страница деактивирована
	ErrPageInactive = errors.New("page is inactive")

	// ErrSlugTaken возвращается, когда не удалось подобрать свободный slug
	ErrSlugTaken = errors.New("slug is already taken")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа к странице
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

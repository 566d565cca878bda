package accountservice

import "errors"

var (
	// ErrOperatorNotFound возвращается, когда оператор не найден в AccountService
	ErrOperatorNotFound = errors.New("operator not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("accountservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("accountservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что AccountService недоступен и публичную страницу
	// следует отдавать без данных оператора
	ErrServiceDegraded = errors.New("accountservice unavailable: graceful degradation applied")
)

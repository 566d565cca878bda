package create_booking

import "errors"

var (
	// ErrPageNotFound возвращается, когда страница бронирования не найдена
	ErrPageNotFound = errors.New("create_booking: page not found")

	// ErrPageInactive возвращается, когда страница деактивирована оператором
	ErrPageInactive = errors.New("create_booking: page is inactive")

	// ErrSlotNotAvailable возвращается, когда запрошенный слот недоступен:
	// вне расписания, в исключении, нарушает min notice или уже занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrMissingRequiredAnswer возвращается, когда не заполнено обязательное квалификационное поле
	ErrMissingRequiredAnswer = errors.New("create_booking: required qualification field is not answered")

	// ErrInvalidAnswer возвращается, когда ответ не проходит валидацию типа поля
	ErrInvalidAnswer = errors.New("create_booking: invalid qualification answer")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

package reservationapi

import "errors"

var (
	// ErrInvalidResponse возвращается при неожиданном ответе сервиса
	ErrInvalidResponse = errors.New("reservationapi: invalid response")

	// ErrInternal возвращается при ошибке выполнения запроса
	ErrInternal = errors.New("reservationapi: internal error")
)

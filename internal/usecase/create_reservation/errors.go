package create_reservation

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_reservation: room not found")

	// ErrRoomInactive возвращается, когда комната выведена из бронирования
	ErrRoomInactive = errors.New("create_reservation: room is not available for reservations")

	// ErrPersonNotFound возвращается, когда участник брони не найден
	ErrPersonNotFound = errors.New("create_reservation: person not found")

	// ErrCapacityExceeded возвращается, когда участников больше вместимости комнаты
	ErrCapacityExceeded = errors.New("create_reservation: participant count exceeds room capacity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

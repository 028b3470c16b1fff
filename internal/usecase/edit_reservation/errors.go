package edit_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("edit_reservation: reservation not found")

	// ErrRoomNotFound возвращается, когда новая комната не найдена
	ErrRoomNotFound = errors.New("edit_reservation: room not found")

	// ErrRoomInactive возвращается, когда новая комната выведена из бронирования
	ErrRoomInactive = errors.New("edit_reservation: room is not available for reservations")

	// ErrPersonNotFound возвращается, когда участник брони не найден
	ErrPersonNotFound = errors.New("edit_reservation: person not found")

	// ErrCapacityExceeded возвращается, когда участников больше вместимости комнаты
	ErrCapacityExceeded = errors.New("edit_reservation: participant count exceeds room capacity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("edit_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("edit_reservation: internal error")
)

package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrNotPending возвращается, когда условное обновление не нашло бронь в состоянии pending
	ErrNotPending = errors.New("reservation.repository: reservation is not pending")

	// ErrOverlap возвращается при срабатывании ограничения на пересечение броней
	ErrOverlap = errors.New("reservation.repository: overlapping reservation")

	// ErrNoTransaction возвращается, когда блокировка запрошена вне транзакции
	ErrNoTransaction = errors.New("reservation.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)

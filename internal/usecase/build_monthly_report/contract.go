package build_monthly_report

import (
	"context"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Room, error)
}

// PersonRepository интерфейс репозитория сотрудников
type PersonRepository interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Person, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные счётчики
type Metrics interface {
	RecordReport(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

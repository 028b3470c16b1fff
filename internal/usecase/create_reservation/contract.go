package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/internal/integrations/events"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	LockRoomDay(ctx context.Context, roomID int64, date time.Time) error
	GetWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// PersonRepository интерфейс репозитория сотрудников
type PersonRepository interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Person, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует события жизненного цикла броней
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics доменные счётчики
type Metrics interface {
	RecordConflict(source string)
	RecordTransition(transition string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

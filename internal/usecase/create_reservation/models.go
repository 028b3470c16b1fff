package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/pkg/types"
)

// Request модель запроса на создание брони
type Request struct {
	Actor            domain.Actor       // кто создаёт бронь
	RoomID           int64              // ID комнаты
	Date             time.Time          // Дата (без времени)
	StartTime        types.TimeString   // Начало, включительно
	EndTime          types.TimeString   // Конец, не включительно
	OnBehalfOfID     int64              // Основной участник, 0 = сам заявитель
	IsSharedCost     bool               // Стоимость делится с SharedWithIDs
	SharedWithIDs    []int64            // До трёх участников, делящих стоимость
	ParticipantCount int                // Количество присутствующих, 0 = 1
	MeetingType      domain.MeetingType // Тип встречи, пусто = internal
	Notes            *string            // Заметки (опционально)
}

// Response модель ответа с созданной бронью
type Response struct {
	Reservation *domain.Reservation
	Room        *domain.Room
}

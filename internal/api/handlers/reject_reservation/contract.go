package reject_reservation

import (
	"context"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/internal/service/reservations/models"
)

type ReservationService interface {
	Reject(ctx context.Context, id int64, actor domain.Actor, reason string) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

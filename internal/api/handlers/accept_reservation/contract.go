package accept_reservation

import (
	"context"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/internal/service/reservations/models"
)

type ReservationService interface {
	Accept(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package edit_reservation

import (
	"context"

	editReservation "github.com/m04kA/SMC-RoomReservations/internal/usecase/edit_reservation"
)

type EditReservationUseCase interface {
	Execute(ctx context.Context, req *editReservation.Request) (*editReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

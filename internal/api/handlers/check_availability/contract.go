package check_availability

import (
	"context"

	"github.com/m04kA/SMC-RoomReservations/internal/availability"
)

type AvailabilityChecker interface {
	Check(ctx context.Context, candidate availability.Candidate) (availability.Verdict, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

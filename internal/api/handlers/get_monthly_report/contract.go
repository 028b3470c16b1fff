package get_monthly_report

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomReservations/internal/report"
)

type ReportUseCase interface {
	Execute(ctx context.Context, year int, month time.Month, filter report.StateFilter) (*report.Report, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

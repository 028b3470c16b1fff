package get_monthly_report

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-RoomReservations/internal/api/handlers"
	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/internal/report"
	buildMonthlyReport "github.com/m04kA/SMC-RoomReservations/internal/usecase/build_monthly_report"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"

	msgInvalidPeriod  = "некорректный период, ожидаются year и month (1-12)"
	msgInvalidState   = "некорректный фильтр state, допустимо: active, all, pending, accepted"
	msgInvalidFormat  = "некорректный format, допустимо: json, csv"
	msgDataUnavailable = "данные для отчёта временно недоступны"
)

type Handler struct {
	useCase ReportUseCase
	logger  Logger
}

func NewHandler(useCase ReportUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reports/rooms/monthly?year=&month=&state=&format=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	year, month, err := parsePeriod(query.Get("year"), query.Get("month"))
	if err != nil {
		h.logger.Warn("GET /reports/rooms/monthly - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	filter, err := report.ParseStateFilter(query.Get("state"))
	if err != nil {
		h.logger.Warn("GET /reports/rooms/monthly - Invalid state filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidState)
		return
	}

	format := query.Get("format")
	if format == "" {
		format = formatJSON
	}
	if format != formatJSON && format != formatCSV {
		h.logger.Warn("GET /reports/rooms/monthly - Invalid format: %q", format)
		handlers.RespondBadRequest(w, msgInvalidFormat)
		return
	}

	rep, err := h.useCase.Execute(r.Context(), year, month, filter)
	if err != nil {
		switch {
		case errors.Is(err, buildMonthlyReport.ErrInvalidInput):
			h.logger.Warn("GET /reports/rooms/monthly - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, domain.ErrDataUnavailable):
			h.logger.Error("GET /reports/rooms/monthly - Data unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgDataUnavailable)

		default:
			h.logger.Error("GET /reports/rooms/monthly - Failed to build report: year=%d, month=%d, error=%v", year, month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reports/rooms/monthly - Report built: period=%04d-%02d, state=%s, reservations=%d",
		year, month, filter, rep.ReservationCount)

	if format == formatCSV {
		filename := fmt.Sprintf("room-costs-%04d-%02d.csv", year, month)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		if err := writeCSV(w, rep.Flatten()); err != nil {
			h.logger.Error("GET /reports/rooms/monthly - Failed to write csv: %v", err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromReport(rep))
}

func parsePeriod(rawYear, rawMonth string) (int, time.Month, error) {
	year, err := strconv.Atoi(rawYear)
	if err != nil || year < 1 {
		return 0, 0, fmt.Errorf("invalid year %q", rawYear)
	}
	month, err := strconv.Atoi(rawMonth)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month %q", rawMonth)
	}
	return year, time.Month(month), nil
}

package report

import "errors"

var (
	// ErrUnknownStateFilter неизвестный фильтр состояний
	ErrUnknownStateFilter = errors.New("report: unknown state filter")

	// ErrInvalidPeriod некорректный период отчёта
	ErrInvalidPeriod = errors.New("report: invalid period")
)

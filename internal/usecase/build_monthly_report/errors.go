package build_monthly_report

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном периоде или фильтре
	ErrInvalidInput = errors.New("build_monthly_report: invalid input data")
)

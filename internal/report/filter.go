package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
)

// StateFilter выбирает, какие брони попадают в отчёт
// Удалённые брони не попадают в отчёт никогда
type StateFilter string

const (
	FilterActive   StateFilter = "active" // pending + accepted
	FilterAll      StateFilter = "all"
	FilterPending  StateFilter = "pending"
	FilterAccepted StateFilter = "accepted"
)

// ParseStateFilter разбирает фильтр из строки, пустая строка = active
func ParseStateFilter(raw string) (StateFilter, error) {
	f := StateFilter(strings.ToLower(strings.TrimSpace(raw)))
	if f == "" {
		return FilterActive, nil
	}
	switch f {
	case FilterActive, FilterAll, FilterPending, FilterAccepted:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStateFilter, raw)
}

// States возвращает состояния, которые нужно выбрать из хранилища
func (f StateFilter) States() []domain.ReservationState {
	switch f {
	case FilterAll:
		return domain.AllStates
	case FilterPending:
		return []domain.ReservationState{domain.StatePending}
	case FilterAccepted:
		return []domain.ReservationState{domain.StateAccepted}
	default:
		return domain.LiveStates
	}
}

// Includes возвращает true, если бронь проходит фильтр
func (f StateFilter) Includes(r *domain.Reservation) bool {
	if r.Deleted {
		return false
	}
	for _, s := range f.States() {
		if r.State == s {
			return true
		}
	}
	return false
}

// Period календарный диапазон отчёта, обе границы включительно
type Period struct {
	From time.Time
	To   time.Time
}

// MonthPeriod возвращает период с первого по последний день месяца
func MonthPeriod(year int, month time.Month) (Period, error) {
	if year < 1970 || year > 9999 {
		return Period{}, fmt.Errorf("%w: year %d out of range", ErrInvalidPeriod, year)
	}
	if month < time.January || month > time.December {
		return Period{}, fmt.Errorf("%w: month %d out of range", ErrInvalidPeriod, month)
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{From: from, To: from.AddDate(0, 1, -1)}, nil
}

// NewPeriod проверяет и нормализует произвольный диапазон дат
func NewPeriod(from, to time.Time) (Period, error) {
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	if to.Before(from) {
		return Period{}, fmt.Errorf("%w: %s is before %s", ErrInvalidPeriod, to.Format(domain.DateFormat), from.Format(domain.DateFormat))
	}
	return Period{From: from, To: to}, nil
}

// Contains возвращает true, если день попадает в период
func (p Period) Contains(day time.Time) bool {
	day = domain.DateOnly(day)
	return !day.Before(p.From) && !day.After(p.To)
}

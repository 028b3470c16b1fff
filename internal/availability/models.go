package availability

import (
	"time"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/pkg/types"
)

// Candidate параметры формы бронирования, для которых проверяется занятость
type Candidate struct {
	RoomID    int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	ExcludeID int64 // редактируемая бронь, 0 = новая
}

// Slot возвращает слот для валидатора пересечений
func (c Candidate) Slot() domain.Slot {
	return domain.Slot{
		RoomID:    c.RoomID,
		Date:      domain.DateOnly(c.Date),
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		ExcludeID: c.ExcludeID,
	}
}

// ConflictInfo данные пересекающейся брони для показа пользователю
type ConflictInfo struct {
	ReservationID int64
	RoomID        int64
	RoomName      string
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	State         domain.ReservationState
}

// NewConflictInfo собирает ConflictInfo из брони
func NewConflictInfo(r *domain.Reservation, roomName string) *ConflictInfo {
	return &ConflictInfo{
		ReservationID: r.ID,
		RoomID:        r.RoomID,
		RoomName:      roomName,
		Date:          r.Date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		State:         r.State,
	}
}

// Verdict результат проверки: свободно или конфликт с бронью
type Verdict struct {
	Available bool
	Conflict  *ConflictInfo
}

// Available свободный слот
func Available() Verdict {
	return Verdict{Available: true}
}

// Conflicting занятый слот
func Conflicting(info *ConflictInfo) Verdict {
	return Verdict{Conflict: info}
}

// Status видимое состояние баннера доступности
type Status string

const (
	StatusUnknown   Status = "unknown"
	StatusChecking  Status = "checking"
	StatusAvailable Status = "available"
	StatusConflict  Status = "conflict"
	StatusError     Status = "error"
)

// View снимок видимого состояния
type View struct {
	Status    Status
	Conflict  *ConflictInfo
	Err       error
	Seq       uint64 // номер проверки, результат которой отображается
	Candidate *Candidate
}

// OutcomeKind судьба отдельного запроса проверки
type OutcomeKind string

const (
	OutcomeApplied    OutcomeKind = "applied"    // результат показан пользователю
	OutcomeStale      OutcomeKind = "stale"      // ответ пришёл после более новой проверки
	OutcomeSuperseded OutcomeKind = "superseded" // заменён более поздним запросом до отправки
	OutcomeSkipped    OutcomeKind = "skipped"    // неполный или некорректный кандидат
	OutcomeClosed     OutcomeKind = "closed"
)

// Outcome результат RequestCheck
type Outcome struct {
	Kind    OutcomeKind
	Seq     uint64
	Verdict Verdict
	Err     error
}

package report

import (
	"time"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/pkg/types"
)

// Amount часы и стоимость в целых единицах: сотые доли часа и центы
type Amount struct {
	CentiHours int64
	CostCents  int64
}

func (a Amount) Add(other Amount) Amount {
	return Amount{
		CentiHours: a.CentiHours + other.CentiHours,
		CostCents:  a.CostCents + other.CostCents,
	}
}

// Hours возвращает часы в десятичном виде (1.50)
func (a Amount) Hours() float64 {
	return float64(a.CentiHours) / 100
}

// Cost возвращает стоимость в денежных единицах (12.00)
func (a Amount) Cost() float64 {
	return float64(a.CostCents) / 100
}

// ShareRow доля одного участника в одной брони
type ShareRow struct {
	ReservationID   int64
	RoomID          int64
	RoomName        string
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	State           domain.ReservationState
	MeetingType     domain.MeetingType
	Role            domain.ParticipantRole
	Billable        bool
	IsSharedCost    bool
	Funders         int      // количество участников, делящих стоимость
	SharedWith      []string // остальные участники брони
	ReservationCost int64    // полная стоимость брони в центах
	ParticipationBP int64    // доля участника в сотых долях процента
	Amount          Amount   // часы брони и доля стоимости участника
}

// ParticipationPct возвращает долю участника в процентах (33.33)
func (r ShareRow) ParticipationPct() float64 {
	return float64(r.ParticipationBP) / 100
}

// PersonNode участник со всеми своими долями за период
type PersonNode struct {
	PersonID    int64
	DisplayName string
	Shares      []ShareRow
	Total       Amount
}

// AreaNode направление внутри команды
type AreaNode struct {
	Name    string
	Persons []*PersonNode
	Total   Amount
}

// TeamNode команда
type TeamNode struct {
	Name  string
	Areas []*AreaNode
	Total Amount
}

// Report иерархический отчёт Team -> Area -> Person -> ShareRow
type Report struct {
	Period      Period
	StateFilter StateFilter
	Teams       []*TeamNode
	Total       Amount

	ReservationCount       int // различные брони периода
	SharedReservationCount int // различные брони с разделением стоимости
}

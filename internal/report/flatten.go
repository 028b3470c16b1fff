package report

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomReservations/pkg/types"
)

// RowKind тип строки плоского отчёта
type RowKind string

const (
	RowTeam         RowKind = "TEAM"
	RowArea         RowKind = "AREA"
	RowPerson       RowKind = "PERSON"
	RowReservation  RowKind = "RESERVATION" // доля участника в одной брони
	RowSubtotalArea RowKind = "SUBTOTAL_AREA"
	RowSubtotalTeam RowKind = "SUBTOTAL_TEAM"
	RowTotal        RowKind = "TOTAL"
)

// Row строка плоского отчёта
// Поля брони заполнены только для RowReservation
type Row struct {
	Kind     RowKind
	Team     string
	Area     string
	PersonID int64
	Person   string

	ReservationID   int64
	RoomName        string
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	SharedWith      string
	ParticipationBP int64

	Amount Amount
}

// Flatten разворачивает дерево в упорядоченный список строк:
// TEAM, AREA, PERSON, RESERVATION..., SUBTOTAL_AREA, SUBTOTAL_TEAM, TOTAL
func (r *Report) Flatten() []Row {
	var rows []Row

	for _, team := range r.Teams {
		rows = append(rows, Row{Kind: RowTeam, Team: team.Name})

		for _, area := range team.Areas {
			rows = append(rows, Row{Kind: RowArea, Team: team.Name, Area: area.Name})

			for _, person := range area.Persons {
				rows = append(rows, Row{
					Kind:     RowPerson,
					Team:     team.Name,
					Area:     area.Name,
					PersonID: person.PersonID,
					Person:   person.DisplayName,
					Amount:   person.Total,
				})

				for _, s := range person.Shares {
					rows = append(rows, Row{
						Kind:            RowReservation,
						Team:            team.Name,
						Area:            area.Name,
						PersonID:        person.PersonID,
						Person:          person.DisplayName,
						ReservationID:   s.ReservationID,
						RoomName:        s.RoomName,
						Date:            s.Date,
						StartTime:       s.StartTime,
						EndTime:         s.EndTime,
						SharedWith:      strings.Join(s.SharedWith, ", "),
						ParticipationBP: s.ParticipationBP,
						Amount:          s.Amount,
					})
				}
			}

			rows = append(rows, Row{Kind: RowSubtotalArea, Team: team.Name, Area: area.Name, Amount: area.Total})
		}

		rows = append(rows, Row{Kind: RowSubtotalTeam, Team: team.Name, Amount: team.Total})
	}

	rows = append(rows, Row{Kind: RowTotal, Amount: r.Total})
	return rows
}

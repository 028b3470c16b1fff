package get_monthly_report

import (
	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/internal/report"
)

// AmountResponse часы и стоимость
type AmountResponse struct {
	Hours float64 `json:"hours"`
	Cost  float64 `json:"cost"`
}

type ShareResponse struct {
	ReservationID    int64    `json:"reservationId"`
	RoomID           int64    `json:"roomId"`
	RoomName         string   `json:"roomName"`
	Date             string   `json:"date"`
	StartTime        string   `json:"startTime"`
	EndTime          string   `json:"endTime"`
	State            string   `json:"state"`
	MeetingType      string   `json:"meetingType,omitempty"`
	Role             string   `json:"role"`
	Billable         bool     `json:"billable"`
	IsSharedCost     bool     `json:"isSharedCost"`
	SharedWith       []string `json:"sharedWith"`
	ReservationCost  float64  `json:"reservationCost"`
	ParticipationPct float64  `json:"participationPct"`
	Hours            float64  `json:"hours"`
	Cost             float64  `json:"cost"`
}

type PersonResponse struct {
	PersonID    int64           `json:"personId"`
	DisplayName string          `json:"displayName"`
	Shares      []ShareResponse `json:"reservations"`
	Total       AmountResponse  `json:"total"`
}

type AreaResponse struct {
	Name    string           `json:"name"`
	Persons []PersonResponse `json:"persons"`
	Total   AmountResponse   `json:"total"`
}

type TeamResponse struct {
	Name  string         `json:"name"`
	Areas []AreaResponse `json:"areas"`
	Total AmountResponse `json:"total"`
}

// ReportResponse HTTP response model
type ReportResponse struct {
	From                   string         `json:"from"`
	To                     string         `json:"to"`
	State                  string         `json:"state"`
	Teams                  []TeamResponse `json:"teams"`
	Total                  AmountResponse `json:"total"`
	ReservationCount       int            `json:"reservationCount"`
	SharedReservationCount int            `json:"sharedReservationCount"`
}

func fromAmount(a report.Amount) AmountResponse {
	return AmountResponse{Hours: a.Hours(), Cost: a.Cost()}
}

// FromReport конвертирует отчёт в HTTP ответ
func FromReport(r *report.Report) ReportResponse {
	resp := ReportResponse{
		From:                   r.Period.From.Format(domain.DateFormat),
		To:                     r.Period.To.Format(domain.DateFormat),
		State:                  string(r.StateFilter),
		Teams:                  make([]TeamResponse, 0, len(r.Teams)),
		Total:                  fromAmount(r.Total),
		ReservationCount:       r.ReservationCount,
		SharedReservationCount: r.SharedReservationCount,
	}

	for _, team := range r.Teams {
		t := TeamResponse{Name: team.Name, Areas: make([]AreaResponse, 0, len(team.Areas)), Total: fromAmount(team.Total)}
		for _, area := range team.Areas {
			a := AreaResponse{Name: area.Name, Persons: make([]PersonResponse, 0, len(area.Persons)), Total: fromAmount(area.Total)}
			for _, person := range area.Persons {
				p := PersonResponse{
					PersonID:    person.PersonID,
					DisplayName: person.DisplayName,
					Shares:      make([]ShareResponse, 0, len(person.Shares)),
					Total:       fromAmount(person.Total),
				}
				for _, s := range person.Shares {
					p.Shares = append(p.Shares, fromShare(s))
				}
				a.Persons = append(a.Persons, p)
			}
			t.Areas = append(t.Areas, a)
		}
		resp.Teams = append(resp.Teams, t)
	}
	return resp
}

func fromShare(s report.ShareRow) ShareResponse {
	sharedWith := s.SharedWith
	if sharedWith == nil {
		sharedWith = []string{}
	}
	return ShareResponse{
		ReservationID:    s.ReservationID,
		RoomID:           s.RoomID,
		RoomName:         s.RoomName,
		Date:             s.Date.Format(domain.DateFormat),
		StartTime:        s.StartTime.String(),
		EndTime:          s.EndTime.String(),
		State:            string(s.State),
		MeetingType:      string(s.MeetingType),
		Role:             string(s.Role),
		Billable:         s.Billable,
		IsSharedCost:     s.IsSharedCost,
		SharedWith:       sharedWith,
		ReservationCost:  float64(s.ReservationCost) / 100,
		ParticipationPct: s.ParticipationPct(),
		Hours:            s.Amount.Hours(),
		Cost:             s.Amount.Cost(),
	}
}

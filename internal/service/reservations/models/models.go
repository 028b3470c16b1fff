package models

import (
	"time"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
)

// ParticipantResponse участник, оплачивающий бронь, с командой на момент бронирования
type ParticipantResponse struct {
	PersonID    int64   `json:"personId"`
	Role        string  `json:"role"`
	DisplayName string  `json:"displayName"`
	Team        *string `json:"team,omitempty"`
	Area        *string `json:"area,omitempty"`
}

// ReservationResponse ответ с данными брони
type ReservationResponse struct {
	ID               int64   `json:"id"`
	RoomID           int64   `json:"roomId"`
	RoomName         string  `json:"roomName,omitempty"`
	Date             string  `json:"date"`      // "2024-03-05"
	StartTime        string  `json:"startTime"` // "09:00"
	EndTime          string  `json:"endTime"`   // "10:30"
	DurationMinutes  int     `json:"durationMinutes"`
	RequesterID      int64   `json:"requesterId"`
	OnBehalfOfID     int64   `json:"onBehalfOfId"`
	State            string  `json:"state"`
	IsSharedCost     bool    `json:"isSharedCost"`
	SharedWithIDs    []int64 `json:"sharedWithIds"`
	ParticipantCount int     `json:"participantCount"`
	MeetingType      string  `json:"meetingType"`
	Notes            *string `json:"notes,omitempty"`

	RejectReason *string `json:"rejectReason,omitempty"`
	DecidedBy    *int64  `json:"decidedBy,omitempty"`
	DecidedAt    *string `json:"decidedAt,omitempty"` // ISO 8601

	Deleted      bool    `json:"deleted"`
	DeleteReason *string `json:"deleteReason,omitempty"`
	DeletedAt    *string `json:"deletedAt,omitempty"` // ISO 8601

	Participants []ParticipantResponse `json:"participants"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation, roomName string) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:               r.ID,
		RoomID:           r.RoomID,
		RoomName:         roomName,
		Date:             r.Date.Format(domain.DateFormat),
		StartTime:        r.StartTime.String(),
		EndTime:          r.EndTime.String(),
		DurationMinutes:  r.DurationMinutes(),
		RequesterID:      r.RequesterID,
		OnBehalfOfID:     r.OnBehalfOfID,
		State:            string(r.State),
		IsSharedCost:     r.IsSharedCost,
		SharedWithIDs:    r.SharedWithIDs,
		ParticipantCount: r.ParticipantCount,
		MeetingType:      string(r.MeetingType),
		Notes:            r.Notes,
		RejectReason:     r.RejectReason,
		DecidedBy:        r.DecidedBy,
		DecidedAt:        formatTime(r.DecidedAt),
		Deleted:          r.Deleted,
		DeleteReason:     r.DeleteReason,
		DeletedAt:        formatTime(r.DeletedAt),
		Participants:     make([]ParticipantResponse, 0, len(r.Participants)),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if resp.SharedWithIDs == nil {
		resp.SharedWithIDs = []int64{}
	}

	for _, p := range r.Participants {
		resp.Participants = append(resp.Participants, ParticipantResponse{
			PersonID:    p.PersonID,
			Role:        string(p.Role),
			DisplayName: p.DisplayName,
			Team:        p.Team,
			Area:        p.Area,
		})
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation, roomName string) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}
	for _, r := range reservations {
		if item := FromDomainReservation(r, roomName); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}
	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

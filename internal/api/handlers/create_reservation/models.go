package create_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-RoomReservations/internal/api/handlers"
	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	createReservation "github.com/m04kA/SMC-RoomReservations/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-RoomReservations/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	RoomID           int64   `json:"roomId" validate:"required,gt=0"`
	Date             string  `json:"date" validate:"required"`      // "2024-03-05"
	StartTime        string  `json:"startTime" validate:"required"` // "09:00"
	EndTime          string  `json:"endTime" validate:"required"`   // "10:30"
	OnBehalfOfID     int64   `json:"onBehalfOfId,omitempty" validate:"gte=0"`
	IsSharedCost     bool    `json:"isSharedCost"`
	SharedWithIDs    []int64 `json:"sharedWithIds,omitempty" validate:"dive,gt=0"`
	ParticipantCount int     `json:"participantCount,omitempty" validate:"gte=0"`
	MeetingType      string  `json:"meetingType,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(actor domain.Actor) (*createReservation.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &createReservation.Request{
		Actor:            actor,
		RoomID:           r.RoomID,
		Date:             date,
		StartTime:        start,
		EndTime:          end,
		OnBehalfOfID:     r.OnBehalfOfID,
		IsSharedCost:     r.IsSharedCost,
		SharedWithIDs:    r.SharedWithIDs,
		ParticipantCount: r.ParticipantCount,
		MeetingType:      domain.MeetingType(r.MeetingType),
		Notes:            r.Notes,
	}, nil
}

package edit_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-RoomReservations/internal/api/handlers"
	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	editReservation "github.com/m04kA/SMC-RoomReservations/internal/usecase/edit_reservation"
	"github.com/m04kA/SMC-RoomReservations/pkg/types"
)

// EditReservationRequest HTTP request model, отсутствующие поля не меняются
type EditReservationRequest struct {
	RoomID           *int64   `json:"roomId,omitempty" validate:"omitempty,gt=0"`
	Date             *string  `json:"date,omitempty"`
	StartTime        *string  `json:"startTime,omitempty"`
	EndTime          *string  `json:"endTime,omitempty"`
	OnBehalfOfID     *int64   `json:"onBehalfOfId,omitempty" validate:"omitempty,gt=0"`
	IsSharedCost     *bool    `json:"isSharedCost,omitempty"`
	SharedWithIDs    *[]int64 `json:"sharedWithIds,omitempty" validate:"omitempty,dive,gt=0"`
	ParticipantCount *int     `json:"participantCount,omitempty" validate:"omitempty,gte=0"`
	MeetingType      *string  `json:"meetingType,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
}

// IsEmpty возвращает true, если запрос ничего не меняет
func (r *EditReservationRequest) IsEmpty() bool {
	return r.RoomID == nil && r.Date == nil && r.StartTime == nil && r.EndTime == nil &&
		r.OnBehalfOfID == nil && r.IsSharedCost == nil && r.SharedWithIDs == nil &&
		r.ParticipantCount == nil && r.MeetingType == nil && r.Notes == nil
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *EditReservationRequest) ToUseCaseRequest(actor domain.Actor, reservationID int64) (*editReservation.Request, error) {
	req := &editReservation.Request{
		Actor:            actor,
		ReservationID:    reservationID,
		RoomID:           r.RoomID,
		OnBehalfOfID:     r.OnBehalfOfID,
		IsSharedCost:     r.IsSharedCost,
		SharedWithIDs:    r.SharedWithIDs,
		ParticipantCount: r.ParticipantCount,
		Notes:            r.Notes,
	}

	if r.Date != nil {
		date, err := handlers.ParseDate(*r.Date)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		req.Date = &date
	}
	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("startTime: %w", err)
		}
		req.StartTime = &start
	}
	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("endTime: %w", err)
		}
		req.EndTime = &end
	}
	if r.MeetingType != nil {
		mt := domain.MeetingType(*r.MeetingType)
		req.MeetingType = &mt
	}

	return req, nil
}

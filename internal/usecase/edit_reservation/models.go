package edit_reservation

import (
	"time"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/pkg/types"
)

// Request частичное изменение брони, nil-поля не меняются
type Request struct {
	Actor         domain.Actor
	ReservationID int64

	RoomID           *int64
	Date             *time.Time
	StartTime        *types.TimeString
	EndTime          *types.TimeString
	OnBehalfOfID     *int64
	IsSharedCost     *bool
	SharedWithIDs    *[]int64
	ParticipantCount *int
	MeetingType      *domain.MeetingType
	Notes            *string
}

// Response результат изменения брони
type Response struct {
	Reservation *domain.Reservation
	Room        *domain.Room
}

// touchesParticipants возвращает true, если патч меняет состав плательщиков
func (r *Request) touchesParticipants() bool {
	return r.OnBehalfOfID != nil || r.IsSharedCost != nil || r.SharedWithIDs != nil
}

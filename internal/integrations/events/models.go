package events

import (
	"time"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
)

// EventType тип события жизненного цикла брони
type EventType string

const (
	EventCreated  EventType = "reservation.created"
	EventEdited   EventType = "reservation.edited"
	EventAccepted EventType = "reservation.accepted"
	EventRejected EventType = "reservation.rejected"
	EventDeleted  EventType = "reservation.deleted"
)

// Event сообщение о смене состояния брони
type Event struct {
	Type          EventType `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	RoomID        int64     `json:"room_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	State         string    `json:"state"`
	Deleted       bool      `json:"deleted"`
	ActorID       int64     `json:"actor_id"`
	Reason        *string   `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewEvent собирает событие из текущего состояния брони
func NewEvent(t EventType, r *domain.Reservation, actorID int64, at time.Time) Event {
	e := Event{
		Type:          t,
		ReservationID: r.ID,
		RoomID:        r.RoomID,
		Date:          r.Date.Format(domain.DateFormat),
		StartTime:     r.StartTime.String(),
		EndTime:       r.EndTime.String(),
		State:         string(r.State),
		Deleted:       r.Deleted,
		ActorID:       actorID,
		OccurredAt:    at.UTC(),
	}
	switch t {
	case EventRejected:
		e.Reason = r.RejectReason
	case EventDeleted:
		e.Reason = r.DeleteReason
	}
	return e
}

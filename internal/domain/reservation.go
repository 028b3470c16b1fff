package domain

import (
	"time"

	"github.com/m04kA/SMC-RoomReservations/pkg/types"
)

// ReservationState represents the lifecycle state of a room reservation
type ReservationState string

const (
	StatePending  ReservationState = "pending"
	StateAccepted ReservationState = "accepted"
	StateRejected ReservationState = "rejected"
)

// IsValid returns true for known states
func (s ReservationState) IsValid() bool {
	return s == StatePending || s == StateAccepted || s == StateRejected
}

// MeetingType is informational only and never affects availability or cost
type MeetingType string

const (
	MeetingInternal  MeetingType = "internal"
	MeetingClient    MeetingType = "client"
	MeetingInterview MeetingType = "interview"
	MeetingTraining  MeetingType = "training"
	MeetingOther     MeetingType = "other"
)

// IsValid returns true for known meeting types
func (m MeetingType) IsValid() bool {
	switch m {
	case MeetingInternal, MeetingClient, MeetingInterview, MeetingTraining, MeetingOther:
		return true
	}
	return false
}

// Reservation represents a booking of a room for a half-open interval [StartTime, EndTime) on Date
type Reservation struct {
	ID           int64
	RoomID       int64
	Date         time.Time // calendar day, UTC midnight
	StartTime    types.TimeString
	EndTime      types.TimeString
	RequesterID  int64
	OnBehalfOfID int64 // primary participant, may differ from requester
	State        ReservationState

	IsSharedCost  bool
	SharedWithIDs []int64 // 0..3 people, distinct from OnBehalfOfID

	ParticipantCount int
	MeetingType      MeetingType
	Notes            *string

	RejectReason *string
	DecidedBy    *int64
	DecidedAt    *time.Time

	Deleted      bool
	DeleteReason *string
	DeletedAt    *time.Time

	// Team/area snapshot of the primary and cost-sharing participants taken at reservation time
	Participants []ParticipantSnapshot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLive returns true if the reservation occupies its slot (not rejected, not deleted)
func (r *Reservation) IsLive() bool {
	return !r.Deleted && r.State != StateRejected
}

// IsPending returns true if the reservation awaits a decision
func (r *Reservation) IsPending() bool {
	return r.State == StatePending
}

// IsTerminal returns true for accepted and rejected reservations
func (r *Reservation) IsTerminal() bool {
	return r.State == StateAccepted || r.State == StateRejected
}

// IsOwnedBy returns true if the person requested the reservation or it was made for them
func (r *Reservation) IsOwnedBy(personID int64) bool {
	return r.RequesterID == personID || r.OnBehalfOfID == personID
}

// Slot returns the room/day interval occupied by the reservation
func (r *Reservation) Slot() Slot {
	return Slot{
		RoomID:    r.RoomID,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// DurationMinutes returns the reservation length, 0 for malformed intervals
func (r *Reservation) DurationMinutes() int {
	minutes, err := r.StartTime.MinutesUntil(r.EndTime)
	if err != nil || minutes < 0 {
		return 0
	}
	return minutes
}

// CostParticipantIDs returns the people funding the reservation:
// the primary participant first, then the cost-sharing participants in order
func (r *Reservation) CostParticipantIDs() []int64 {
	ids := []int64{r.OnBehalfOfID}
	if r.IsSharedCost {
		ids = append(ids, r.SharedWithIDs...)
	}
	return ids
}

// Snapshot returns the stored participant snapshot for the person
func (r *Reservation) Snapshot(personID int64) (ParticipantSnapshot, bool) {
	for _, p := range r.Participants {
		if p.PersonID == personID {
			return p, true
		}
	}
	return ParticipantSnapshot{}, false
}

// ReservationsFilter narrows reservation queries
type ReservationsFilter struct {
	RoomID         *int64             // nil = all rooms
	StartDate      *time.Time         // inclusive
	EndDate        *time.Time         // inclusive
	States         []ReservationState // empty = every state
	IncludeDeleted bool
}

// DayFilter returns a filter selecting live reservations of a room on a day
func DayFilter(roomID int64, date time.Time) ReservationsFilter {
	day := DateOnly(date)
	return ReservationsFilter{
		RoomID:    &roomID,
		StartDate: &day,
		EndDate:   &day,
		States:    LiveStates,
	}
}

// IsSingleDay returns true if the filter targets exactly one day
func (f ReservationsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && SameDay(*f.StartDate, *f.EndDate)
}

// DateOnly truncates t to its calendar day in UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay returns true if both times fall on the same calendar day
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInterval malformed, incomplete, too short or too long time window
	ErrInvalidInterval = errors.New("invalid reservation interval")

	// ErrInvalidParticipants more than three cost-sharing people, duplicates or the primary among them
	ErrInvalidParticipants = errors.New("invalid reservation participants")

	// ErrForbidden the actor lacks the capability for the operation
	ErrForbidden = errors.New("operation forbidden for actor")

	// ErrInvalidTransition the reservation state does not allow the operation
	ErrInvalidTransition = errors.New("invalid reservation state transition")

	// ErrReasonRequired reject and delete require a non-empty reason
	ErrReasonRequired = errors.New("reason is required")

	// ErrConflict the interval overlaps a live reservation of the same room and day
	ErrConflict = errors.New("reservation conflict")

	// ErrUnknownPerson participant is not a known person
	ErrUnknownPerson = errors.New("unknown person")

	// ErrDataUnavailable an upstream fetch failed, no partial result is produced
	ErrDataUnavailable = errors.New("reservation data unavailable")
)

// ConflictError carries the overlapping reservation for user display
type ConflictError struct {
	Existing *Reservation
	RoomName string
}

// NewConflictError creates a conflict error for the overlapping reservation
func NewConflictError(existing *Reservation, roomName string) *ConflictError {
	return &ConflictError{Existing: existing, RoomName: roomName}
}

func (e *ConflictError) Error() string {
	if e.Existing == nil {
		return ErrConflict.Error()
	}
	return fmt.Sprintf("%s: room %q on %s %s-%s is taken by reservation id=%d",
		ErrConflict.Error(),
		e.RoomName,
		e.Existing.Date.Format(DateFormat),
		e.Existing.StartTime,
		e.Existing.EndTime,
		e.Existing.ID,
	)
}

// Is makes errors.Is(err, ErrConflict) match
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

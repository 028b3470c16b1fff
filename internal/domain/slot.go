package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomReservations/pkg/types"
)

// Slot is a candidate half-open interval [StartTime, EndTime) of a room on a day
type Slot struct {
	RoomID    int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	ExcludeID int64 // reservation being edited, 0 = none
}

// IntervalPolicy configures accepted reservation lengths
type IntervalPolicy struct {
	MinDurationMinutes int
	MaxDurationMinutes int // 0 = unlimited
}

// DefaultIntervalPolicy returns the default 15 minutes .. 12 hours policy
func DefaultIntervalPolicy() IntervalPolicy {
	return IntervalPolicy{
		MinDurationMinutes: DefaultMinDurationMinutes,
		MaxDurationMinutes: DefaultMaxDurationMinutes,
	}
}

// IsComplete returns true when room, date, start and end are all set
func (s Slot) IsComplete() bool {
	return s.RoomID > 0 && !s.Date.IsZero() && !s.StartTime.IsZero() && !s.EndTime.IsZero()
}

// Validate checks completeness and well-formedness against the policy
func (s Slot) Validate(policy IntervalPolicy) error {
	if !s.IsComplete() {
		return fmt.Errorf("%w: room, date, start and end are required", ErrInvalidInterval)
	}

	minutes, err := s.StartTime.MinutesUntil(s.EndTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	if minutes <= 0 {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidInterval)
	}
	if minutes < policy.MinDurationMinutes {
		return fmt.Errorf("%w: minimum duration is %d minutes", ErrInvalidInterval, policy.MinDurationMinutes)
	}
	if policy.MaxDurationMinutes > 0 && minutes > policy.MaxDurationMinutes {
		return fmt.Errorf("%w: maximum duration is %d minutes", ErrInvalidInterval, policy.MaxDurationMinutes)
	}
	return nil
}

// ValidateParticipants checks the cost-sharing list of a reservation
func ValidateParticipants(primaryID int64, sharedWithIDs []int64, isSharedCost bool) error {
	if primaryID <= 0 {
		return fmt.Errorf("%w: primary participant is required", ErrInvalidParticipants)
	}
	if len(sharedWithIDs) > MaxSharedParticipants {
		return fmt.Errorf("%w: at most %d people can share the cost", ErrInvalidParticipants, MaxSharedParticipants)
	}
	if isSharedCost && len(sharedWithIDs) == 0 {
		return fmt.Errorf("%w: shared cost requires at least one participant", ErrInvalidParticipants)
	}

	seen := make(map[int64]struct{}, len(sharedWithIDs))
	for _, id := range sharedWithIDs {
		if id <= 0 {
			return fmt.Errorf("%w: participant id must be positive", ErrInvalidParticipants)
		}
		if id == primaryID {
			return fmt.Errorf("%w: person id=%d is already the primary participant", ErrInvalidParticipants, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: person id=%d is listed twice", ErrInvalidParticipants, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

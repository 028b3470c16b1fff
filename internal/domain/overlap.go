package domain

import "github.com/m04kA/SMC-RoomReservations/pkg/types"

// Overlaps reports whether half-open intervals [aStart, aEnd) and [bStart, bEnd) intersect
// Touching endpoints (aEnd == bStart) do not overlap. Malformed values never overlap.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}

// FindConflict returns the live reservation of the same room and day that overlaps the candidate.
// When several overlap, the earliest-starting one wins, ties broken by lower ID.
// The candidate's ExcludeID (the reservation being edited) is ignored.
// Returns nil if the slot is free.
func FindConflict(candidate Slot, existing []*Reservation) *Reservation {
	var best *Reservation
	var bestStart int

	for _, r := range existing {
		if r == nil || !r.IsLive() {
			continue
		}
		if candidate.ExcludeID != 0 && r.ID == candidate.ExcludeID {
			continue
		}
		if r.RoomID != candidate.RoomID || !SameDay(r.Date, candidate.Date) {
			continue
		}
		if !Overlaps(candidate.StartTime, candidate.EndTime, r.StartTime, r.EndTime) {
			continue
		}

		start, err := r.StartTime.Minutes()
		if err != nil {
			continue
		}
		if best == nil || start < bestStart || (start == bestStart && r.ID < best.ID) {
			best = r
			bestStart = start
		}
	}

	return best
}

package edit_reservation

import (
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
)

// applyPatch применяет непустые поля запроса к копии брони
func applyPatch(current *domain.Reservation, req *Request) *domain.Reservation {
	updated := *current
	updated.SharedWithIDs = append([]int64(nil), current.SharedWithIDs...)

	if req.RoomID != nil {
		updated.RoomID = *req.RoomID
	}
	if req.Date != nil {
		updated.Date = domain.DateOnly(*req.Date)
	}
	if req.StartTime != nil {
		updated.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		updated.EndTime = *req.EndTime
	}
	if req.OnBehalfOfID != nil {
		updated.OnBehalfOfID = *req.OnBehalfOfID
	}
	if req.IsSharedCost != nil {
		updated.IsSharedCost = *req.IsSharedCost
	}
	if req.SharedWithIDs != nil {
		updated.SharedWithIDs = append([]int64(nil), (*req.SharedWithIDs)...)
	}
	if !updated.IsSharedCost {
		updated.SharedWithIDs = nil
	}
	if req.ParticipantCount != nil {
		updated.ParticipantCount = *req.ParticipantCount
	}
	if req.MeetingType != nil {
		updated.MeetingType = *req.MeetingType
	}
	if req.Notes != nil {
		notes := *req.Notes
		updated.Notes = &notes
	}
	return &updated
}

// validatePatched валидирует бронь после применения патча
func validatePatched(r *domain.Reservation, policy domain.IntervalPolicy) error {
	if err := r.Slot().Validate(policy); err != nil {
		return err
	}
	if err := domain.ValidateParticipants(r.OnBehalfOfID, r.SharedWithIDs, r.IsSharedCost); err != nil {
		return err
	}
	if r.ParticipantCount < 1 {
		return fmt.Errorf("%w: participantCount must be at least 1", ErrInvalidInput)
	}
	if !r.MeetingType.IsValid() {
		return fmt.Errorf("%w: unknown meeting type %q", ErrInvalidInput, r.MeetingType)
	}
	if r.Notes != nil && utf8.RuneCountInString(*r.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

type roomDay struct {
	roomID int64
	date   time.Time
}

// lockOrder возвращает уникальные пары (комната, день) в фиксированном порядке,
// чтобы два встречных переноса не взяли блокировки крест-накрест
func lockOrder(keys ...roomDay) []roomDay {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].roomID != keys[j].roomID {
			return keys[i].roomID < keys[j].roomID
		}
		return keys[i].date.Before(keys[j].date)
	})

	out := keys[:0]
	for i, k := range keys {
		if i > 0 && k.roomID == out[len(out)-1].roomID && domain.SameDay(k.date, out[len(out)-1].date) {
			continue
		}
		out = append(out, k)
	}
	return out
}

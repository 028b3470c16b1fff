package create_reservation

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
)

// normalizeRequest подставляет значения по умолчанию
func normalizeRequest(req *Request) {
	if req.OnBehalfOfID == 0 {
		req.OnBehalfOfID = req.Actor.PersonID
	}
	if req.ParticipantCount == 0 {
		req.ParticipantCount = 1
	}
	if req.MeetingType == "" {
		req.MeetingType = domain.MeetingInternal
	}
	if !req.IsSharedCost {
		req.SharedWithIDs = nil
	}
	req.Date = domain.DateOnly(req.Date)
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, policy domain.IntervalPolicy) error {
	if req.Actor.PersonID <= 0 {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	slot := domain.Slot{RoomID: req.RoomID, Date: req.Date, StartTime: req.StartTime, EndTime: req.EndTime}
	if err := slot.Validate(policy); err != nil {
		return err
	}

	if err := domain.ValidateParticipants(req.OnBehalfOfID, req.SharedWithIDs, req.IsSharedCost); err != nil {
		return err
	}

	if req.ParticipantCount < 1 {
		return fmt.Errorf("%w: participantCount must be at least 1", ErrInvalidInput)
	}

	if !req.MeetingType.IsValid() {
		return fmt.Errorf("%w: unknown meeting type %q", ErrInvalidInput, req.MeetingType)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// personIDs возвращает участников, которых нужно загрузить: заявитель и плательщики
func personIDs(req *Request) []int64 {
	ids := []int64{req.Actor.PersonID}
	if req.OnBehalfOfID != req.Actor.PersonID {
		ids = append(ids, req.OnBehalfOfID)
	}
	return append(ids, req.SharedWithIDs...)
}

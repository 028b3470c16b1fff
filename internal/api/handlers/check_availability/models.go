package check_availability

import (
	"fmt"

	"github.com/m04kA/SMC-RoomReservations/internal/api/handlers"
	"github.com/m04kA/SMC-RoomReservations/internal/availability"
	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/pkg/types"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	RoomID    int64  `json:"roomId" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	ExcludeID *int64 `json:"excludeId,omitempty" validate:"omitempty,gt=0"`
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	Available bool                      `json:"available"`
	Conflict  *handlers.ConflictDetails `json:"conflict,omitempty"`
}

// ToCandidate конвертирует HTTP запрос в кандидата проверки
func (r *CheckAvailabilityRequest) ToCandidate() (availability.Candidate, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return availability.Candidate{}, fmt.Errorf("date: %w", err)
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return availability.Candidate{}, fmt.Errorf("startTime: %w", err)
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return availability.Candidate{}, fmt.Errorf("endTime: %w", err)
	}

	candidate := availability.Candidate{
		RoomID:    r.RoomID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
	if r.ExcludeID != nil {
		candidate.ExcludeID = *r.ExcludeID
	}
	return candidate, nil
}

// FromVerdict конвертирует результат проверки в HTTP ответ
func FromVerdict(v availability.Verdict) CheckAvailabilityResponse {
	if v.Available || v.Conflict == nil {
		return CheckAvailabilityResponse{Available: v.Available}
	}
	c := v.Conflict
	return CheckAvailabilityResponse{
		Conflict: &handlers.ConflictDetails{
			ReservationID: c.ReservationID,
			RoomID:        c.RoomID,
			RoomName:      c.RoomName,
			Date:          c.Date.Format(domain.DateFormat),
			StartTime:     c.StartTime.String(),
			EndTime:       c.EndTime.String(),
			State:         string(c.State),
		},
	}
}

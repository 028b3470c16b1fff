package handlers

import (
	"net/http"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
)

const msgConflict = "комната уже занята в выбранное время"

// ConflictDetails пересекающаяся бронь в ответе 409
type ConflictDetails struct {
	ReservationID int64  `json:"reservationId"`
	RoomID        int64  `json:"roomId"`
	RoomName      string `json:"roomName"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	State         string `json:"state"`
}

// ConflictResponse тело ответа 409
type ConflictResponse struct {
	Error    string           `json:"error"`
	Conflict *ConflictDetails `json:"conflict,omitempty"`
}

// RespondConflict 409 с данными пересекающейся брони, если они известны
// Пересечение, пойманное ограничением БД, приходит без брони
func RespondConflict(w http.ResponseWriter, conflict *domain.ConflictError) {
	body := ConflictResponse{Error: msgConflict}
	if conflict != nil && conflict.Existing != nil {
		e := conflict.Existing
		body.Conflict = &ConflictDetails{
			ReservationID: e.ID,
			RoomID:        e.RoomID,
			RoomName:      conflict.RoomName,
			Date:          e.Date.Format(domain.DateFormat),
			StartTime:     e.StartTime.String(),
			EndTime:       e.EndTime.String(),
			State:         string(e.State),
		}
	}
	RespondJSON(w, http.StatusConflict, body)
}

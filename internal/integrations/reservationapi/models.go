package reservationapi

// CheckRequest тело запроса проверки доступности
type CheckRequest struct {
	RoomID    int64  `json:"roomId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	ExcludeID *int64 `json:"excludeId,omitempty"`
}

// Conflict пересекающаяся бронь
type Conflict struct {
	ReservationID int64  `json:"reservationId"`
	RoomID        int64  `json:"roomId"`
	RoomName      string `json:"roomName"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	State         string `json:"state"`
}

// CheckResponse ответ проверки доступности
type CheckResponse struct {
	Available bool      `json:"available"`
	Conflict  *Conflict `json:"conflict,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

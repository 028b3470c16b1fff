package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomReservations/internal/api/handlers"
	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	checkAvailability "github.com/m04kA/SMC-RoomReservations/internal/usecase/check_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInterval    = "некорректный интервал бронирования"
	msgRoomNotFound       = "комната не найдена"
)

type Handler struct {
	checker AvailabilityChecker
	logger  Logger
}

func NewHandler(checker AvailabilityChecker, logger Logger) *Handler {
	return &Handler{
		checker: checker,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/availability
// Конфликт не является ошибкой: ответ 200 с available=false и данными брони
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckAvailabilityRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /reservations/availability - Invalid request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody, handlers.ValidationDetails(err))
		return
	}

	candidate, err := req.ToCandidate()
	if err != nil {
		h.logger.Warn("POST /reservations/availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	verdict, err := h.checker.Check(r.Context(), candidate)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInterval):
			h.logger.Warn("POST /reservations/availability - Invalid interval: %v", err)
			handlers.RespondUnprocessable(w, msgInvalidInterval)

		case errors.Is(err, checkAvailability.ErrRoomNotFound):
			h.logger.Warn("POST /reservations/availability - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		default:
			h.logger.Error("POST /reservations/availability - Failed to check availability: room_id=%d, error=%v",
				req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromVerdict(verdict))
}

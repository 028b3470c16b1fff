package accept_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomReservations/internal/api/handlers"
	"github.com/m04kA/SMC-RoomReservations/internal/api/middleware"
	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/internal/service/reservations"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронь не найдена"
	msgForbidden            = "нет права подтверждать брони"
	msgInvalidTransition    = "подтвердить можно только бронь в статусе pending"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathInt64(r, "reservationId")
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/accept - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/{id}/accept - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	res, err := h.service.Accept(r.Context(), reservationID, actor)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/accept - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Error("POST /reservations/{id}/accept - Forbidden: reservation_id=%d, user_id=%d", reservationID, actor.PersonID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Error("POST /reservations/{id}/accept - Invalid transition: reservation_id=%d, %v", reservationID, err)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("POST /reservations/{id}/accept - Failed to accept reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/accept - Reservation accepted: reservation_id=%d, user_id=%d",
		reservationID, actor.PersonID)
	handlers.RespondJSON(w, http.StatusOK, res)
}

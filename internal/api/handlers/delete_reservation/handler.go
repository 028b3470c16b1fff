package delete_reservation

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
	msgInvalidRequestBody   = "необходимо указать причину"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронь не найдена"
	msgForbidden            = "удалять можно только свои брони"
	msgInvalidTransition    = "удалить можно только бронь в статусе pending"
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

// Handle DELETE /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathInt64(r, "reservationId")
	if err != nil {
		h.logger.Warn("DELETE /reservations/{reservationId} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /reservations/{reservationId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req DeleteReservationRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("DELETE /reservations/{reservationId} - Invalid request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody, handlers.ValidationDetails(err))
		return
	}

	res, err := h.service.SoftDelete(r.Context(), reservationID, actor, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("DELETE /reservations/{reservationId} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrReasonRequired):
			h.logger.Warn("DELETE /reservations/{reservationId} - Reason required: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Error("DELETE /reservations/{reservationId} - Forbidden: reservation_id=%d, user_id=%d", reservationID, actor.PersonID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Error("DELETE /reservations/{reservationId} - Invalid transition: reservation_id=%d, %v", reservationID, err)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("DELETE /reservations/{reservationId} - Failed to process reservation: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{reservationId} - Done: reservation_id=%d, user_id=%d", reservationID, actor.PersonID)
	handlers.RespondJSON(w, http.StatusOK, res)
}

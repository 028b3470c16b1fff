package edit_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomReservations/internal/api/handlers"
	"github.com/m04kA/SMC-RoomReservations/internal/api/middleware"
	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/internal/service/reservations/models"
	editReservation "github.com/m04kA/SMC-RoomReservations/internal/usecase/edit_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgEmptyPatch           = "не указано ни одного изменяемого поля"
	msgInvalidDateTime      = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронь не найдена"
	msgForbidden            = "изменять можно только свои брони"
	msgInvalidTransition    = "изменить можно только бронь в статусе pending"
	msgInvalidInterval      = "некорректный интервал бронирования"
	msgInvalidParticipants  = "некорректный список участников, разделяющих стоимость"
	msgRoomNotFound         = "комната не найдена"
	msgRoomInactive         = "комната недоступна для бронирования"
	msgPersonNotFound       = "участник не найден"
	msgCapacityExceeded     = "участников больше, чем вмещает комната"
)

type Handler struct {
	useCase EditReservationUseCase
	logger  Logger
}

func NewHandler(useCase EditReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathInt64(r, "reservationId")
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req EditReservationRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody, handlers.ValidationDetails(err))
		return
	}
	if req.IsEmpty() {
		h.logger.Warn("PATCH /reservations/{id} - Empty patch: reservation_id=%d", reservationID)
		handlers.RespondBadRequest(w, msgEmptyPatch)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, reservationID)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *domain.ConflictError
		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("PATCH /reservations/{id} - Conflict: reservation_id=%d, %v", reservationID, err)
			handlers.RespondConflict(w, conflict)

		case errors.Is(err, editReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Error("PATCH /reservations/{id} - Invalid transition: reservation_id=%d, %v", reservationID, err)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Error("PATCH /reservations/{id} - Forbidden: reservation_id=%d, user_id=%d", reservationID, actor.PersonID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidInterval):
			h.logger.Warn("PATCH /reservations/{id} - Invalid interval: reservation_id=%d, %v", reservationID, err)
			handlers.RespondUnprocessable(w, msgInvalidInterval)

		case errors.Is(err, domain.ErrInvalidParticipants):
			h.logger.Warn("PATCH /reservations/{id} - Invalid participants: reservation_id=%d, %v", reservationID, err)
			handlers.RespondUnprocessable(w, msgInvalidParticipants)

		case errors.Is(err, editReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id} - Invalid input: reservation_id=%d, %v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, editReservation.ErrRoomNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Room not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, editReservation.ErrRoomInactive):
			h.logger.Warn("PATCH /reservations/{id} - Room inactive: reservation_id=%d", reservationID)
			handlers.RespondUnprocessable(w, msgRoomInactive)

		case errors.Is(err, editReservation.ErrPersonNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Person not found: reservation_id=%d, %v", reservationID, err)
			handlers.RespondUnprocessable(w, msgPersonNotFound)

		case errors.Is(err, editReservation.ErrCapacityExceeded):
			h.logger.Warn("PATCH /reservations/{id} - Capacity exceeded: reservation_id=%d", reservationID)
			handlers.RespondUnprocessable(w, msgCapacityExceeded)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to edit reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id} - Reservation updated: reservation_id=%d, user_id=%d",
		reservationID, actor.PersonID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservation(result.Reservation, result.Room.Name))
}

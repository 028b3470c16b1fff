package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomReservations/internal/api/handlers"
	"github.com/m04kA/SMC-RoomReservations/internal/api/middleware"
	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-RoomReservations/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateTime     = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidInterval     = "некорректный интервал бронирования"
	msgInvalidParticipants = "некорректный список участников, разделяющих стоимость"
	msgRoomNotFound        = "комната не найдена"
	msgRoomInactive        = "комната недоступна для бронирования"
	msgPersonNotFound      = "участник не найден"
	msgCapacityExceeded    = "участников больше, чем вмещает комната"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody, handlers.ValidationDetails(err))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *domain.ConflictError
		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /reservations - Conflict: user_id=%d, room_id=%d, %v", actor.PersonID, req.RoomID, err)
			handlers.RespondConflict(w, conflict)

		case errors.Is(err, domain.ErrInvalidInterval):
			h.logger.Warn("POST /reservations - Invalid interval: user_id=%d, %v", actor.PersonID, err)
			handlers.RespondUnprocessable(w, msgInvalidInterval)

		case errors.Is(err, domain.ErrInvalidParticipants):
			h.logger.Warn("POST /reservations - Invalid participants: user_id=%d, %v", actor.PersonID, err)
			handlers.RespondUnprocessable(w, msgInvalidParticipants)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, %v", actor.PersonID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createReservation.ErrRoomNotFound):
			h.logger.Warn("POST /reservations - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createReservation.ErrRoomInactive):
			h.logger.Warn("POST /reservations - Room inactive: room_id=%d", req.RoomID)
			handlers.RespondUnprocessable(w, msgRoomInactive)

		case errors.Is(err, createReservation.ErrPersonNotFound):
			h.logger.Warn("POST /reservations - Person not found: user_id=%d, %v", actor.PersonID, err)
			handlers.RespondUnprocessable(w, msgPersonNotFound)

		case errors.Is(err, createReservation.ErrCapacityExceeded):
			h.logger.Warn("POST /reservations - Capacity exceeded: room_id=%d", req.RoomID)
			handlers.RespondUnprocessable(w, msgCapacityExceeded)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, room_id=%d, error=%v",
				actor.PersonID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, room_id=%d",
		result.Reservation.ID, actor.PersonID, req.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainReservation(result.Reservation, result.Room.Name))
}

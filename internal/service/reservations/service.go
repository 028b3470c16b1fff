package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RoomReservations/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-RoomReservations/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomReservations/internal/integrations/events"
	"github.com/m04kA/SMC-RoomReservations/internal/service/reservations/models"
)

// Service сервис решений по броням и чтения броней
type Service struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронь по ID (включая удалённые)
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	res, err := s.getReservation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainReservation(res, s.roomName(ctx, res.RoomID)), nil
}

// ListRoomDay возвращает живые брони комнаты на день в порядке начала
func (s *Service) ListRoomDay(ctx context.Context, roomID int64, date time.Time) (*models.ReservationListResponse, error) {
	s.logger.Info("ListRoomDay: room=%d, date=%s", roomID, date.Format(domain.DateFormat))

	if roomID <= 0 || date.IsZero() {
		return nil, fmt.Errorf("%w: room and date are required", ErrInvalidInput)
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("ListRoomDay: room id=%d not found", roomID)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("ListRoomDay: failed to get room id=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: ListRoomDay - room repository error: %v", ErrInternal, err)
	}

	list, err := s.reservationRepo.GetWithFilter(ctx, domain.DayFilter(roomID, date))
	if err != nil {
		s.logger.Error("ListRoomDay: repository error for room=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: ListRoomDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListRoomDay: fetched %d reservations for room=%d", len(list), roomID)
	return models.FromDomainReservationList(list, room.Name), nil
}

// Accept подтверждает pending-бронь (нужна возможность approve)
func (s *Service) Accept(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error) {
	s.logger.Info("Accept: reservation id=%d by actor=%d", id, actor.PersonID)

	return s.transition(ctx, "Accept", id, actor, events.EventAccepted, func(r *domain.Reservation, now time.Time) error {
		return r.Accept(actor, now)
	}, s.reservationRepo.UpdateDecision)
}

// Reject отклоняет pending-бронь с обязательной причиной
func (s *Service) Reject(ctx context.Context, id int64, actor domain.Actor, reason string) (*models.ReservationResponse, error) {
	s.logger.Info("Reject: reservation id=%d by actor=%d", id, actor.PersonID)

	return s.transition(ctx, "Reject", id, actor, events.EventRejected, func(r *domain.Reservation, now time.Time) error {
		return r.Reject(actor, reason, now)
	}, s.reservationRepo.UpdateDecision)
}

// SoftDelete помечает pending-бронь удалённой, слот освобождается
// Удалять может владелец брони или администратор
func (s *Service) SoftDelete(ctx context.Context, id int64, actor domain.Actor, reason string) (*models.ReservationResponse, error) {
	s.logger.Info("SoftDelete: reservation id=%d by actor=%d", id, actor.PersonID)

	return s.transition(ctx, "SoftDelete", id, actor, events.EventDeleted, func(r *domain.Reservation, now time.Time) error {
		return r.SoftDelete(actor, reason, now)
	}, s.reservationRepo.SoftDelete)
}

// transition загружает бронь под блокировкой строки, применяет переход и сохраняет его
// условным обновлением: из двух одновременных решений выигрывает одно
func (s *Service) transition(
	ctx context.Context,
	op string,
	id int64,
	actor domain.Actor,
	eventType events.EventType,
	apply func(r *domain.Reservation, now time.Time) error,
	persist func(ctx context.Context, r *domain.Reservation) error,
) (*models.ReservationResponse, error) {
	var result *domain.Reservation

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Бронь под FOR UPDATE
		res, err := s.getReservation(txCtx, op, id)
		if err != nil {
			return err
		}

		// 2. Проверка прав и состояния
		if err := apply(res, s.timeProvider.Now()); err != nil {
			if errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrInvalidTransition) {
				// UI не должен предлагать такую операцию
				s.logger.Error("%s: actor=%d, reservation id=%d: %v", op, actor.PersonID, id, err)
			} else {
				s.logger.Warn("%s: reservation id=%d: %v", op, id, err)
			}
			return err
		}

		// 3. Условное обновление
		if err := persist(txCtx, res); err != nil {
			if errors.Is(err, reservationRepo.ErrNotPending) {
				s.logger.Error("%s: reservation id=%d left pending state concurrently", op, id)
				return fmt.Errorf("%w: reservation id=%d is no longer pending", domain.ErrInvalidTransition, id)
			}
			s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
			return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
		}

		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTransition(transitionLabel(eventType))
	s.logger.Info("%s: reservation id=%d is now %s (deleted=%v)", op, id, result.State, result.Deleted)

	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, result, actor.PersonID, s.timeProvider.Now())); err != nil {
		s.logger.Warn("%s: failed to publish event for reservation id=%d: %v", op, id, err)
	}

	return models.FromDomainReservation(result, s.roomName(ctx, result.RoomID)), nil
}

func (s *Service) getReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return res, nil
}

// roomName название комнаты для ответа, пустое при ошибке чтения
func (s *Service) roomName(ctx context.Context, roomID int64) string {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		s.logger.Warn("roomName: failed to get room id=%d: %v", roomID, err)
		return ""
	}
	return room.Name
}

func transitionLabel(t events.EventType) string {
	switch t {
	case events.EventAccepted:
		return "accept"
	case events.EventRejected:
		return "reject"
	case events.EventDeleted:
		return "delete"
	}
	return string(t)
}

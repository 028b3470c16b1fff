package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RoomReservations/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-RoomReservations/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomReservations/internal/integrations/events"
)

// UseCase use case для создания брони (авторитетная проверка + сохранение)
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	personRepo      PersonRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	policy          domain.IntervalPolicy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	personRepo PersonRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	policy domain.IntervalPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		personRepo:      personRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания брони
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции
// под advisory-блокировкой (комната, день)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	normalizeRequest(req)

	uc.logger.Info("CreateReservation: actor=%d, room=%d, date=%s, time=%s-%s, onBehalfOf=%d, shared=%v",
		req.Actor.PersonID, req.RoomID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.OnBehalfOfID, req.SharedWithIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.policy); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем комнату
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateReservation: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateReservation: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}
	if !room.IsActive {
		uc.logger.Warn("CreateReservation: room id=%d is inactive", req.RoomID)
		return nil, ErrRoomInactive
	}
	if room.Capacity > 0 && req.ParticipantCount > room.Capacity {
		uc.logger.Warn("CreateReservation: %d participants exceed capacity %d of room id=%d",
			req.ParticipantCount, room.Capacity, room.ID)
		return nil, fmt.Errorf("%w: capacity is %d", ErrCapacityExceeded, room.Capacity)
	}

	// 3. Получаем участников и снимаем их команду/направление
	persons, err := uc.personRepo.GetByIDs(ctx, personIDs(req))
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get persons: %v", err)
		return nil, fmt.Errorf("%w: failed to get persons: %v", ErrInternal, err)
	}
	if _, ok := persons[req.Actor.PersonID]; !ok {
		uc.logger.Warn("CreateReservation: requester id=%d not found", req.Actor.PersonID)
		return nil, fmt.Errorf("%w: person id=%d", ErrPersonNotFound, req.Actor.PersonID)
	}
	snapshots, err := domain.BuildSnapshots(req.OnBehalfOfID, req.SharedWithIDs, persons)
	if err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrPersonNotFound, err)
	}

	reservation := &domain.Reservation{
		RoomID:           req.RoomID,
		Date:             req.Date,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		RequesterID:      req.Actor.PersonID,
		OnBehalfOfID:     req.OnBehalfOfID,
		State:            domain.StatePending,
		IsSharedCost:     req.IsSharedCost,
		SharedWithIDs:    req.SharedWithIDs,
		ParticipantCount: req.ParticipantCount,
		MeetingType:      req.MeetingType,
		Notes:            req.Notes,
		Participants:     snapshots,
	}

	var result *domain.Reservation

	// 4. Проверка пересечений и сохранение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Сериализуем писателей этой комнаты на этот день
		if err := uc.reservationRepo.LockRoomDay(txCtx, req.RoomID, req.Date); err != nil {
			uc.logger.Error("CreateReservation: failed to lock room day: %v", err)
			return fmt.Errorf("%w: failed to lock room day: %w", ErrInternal, err)
		}

		// 4.2. Живые брони комнаты на этот день (FOR UPDATE)
		existing, err := uc.reservationRepo.GetWithFilter(txCtx, domain.DayFilter(req.RoomID, req.Date))
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		// 4.3. Авторитетная проверка пересечения
		if conflict := domain.FindConflict(reservation.Slot(), existing); conflict != nil {
			uc.logger.Warn("CreateReservation: slot %s-%s conflicts with reservation id=%d (%s-%s)",
				req.StartTime, req.EndTime, conflict.ID, conflict.StartTime, conflict.EndTime)
			return domain.NewConflictError(conflict, room.Name)
		}

		// 4.4. Сохраняем бронь
		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrOverlap) {
				uc.logger.Warn("CreateReservation: overlap rejected by database constraint")
				return domain.NewConflictError(nil, room.Name)
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			uc.metrics.RecordConflict("commit")
		}
		return nil, err
	}

	uc.metrics.RecordTransition("create")
	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// 5. Событие публикуется после фиксации
	event := events.NewEvent(events.EventCreated, result, req.Actor.PersonID, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateReservation: failed to publish event for reservation id=%d: %v", result.ID, err)
	}

	return &Response{Reservation: result, Room: room}, nil
}

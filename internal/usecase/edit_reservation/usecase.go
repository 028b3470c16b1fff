package edit_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RoomReservations/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-RoomReservations/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomReservations/internal/integrations/events"
)

// UseCase use case для изменения pending-брони
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

// Execute выполняет use case изменения брони
// Изменённая бронь не конфликтует сама с собой: она исключается из проверки пересечений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EditReservation: actor=%d, reservation=%d", req.Actor.PersonID, req.ReservationID)

	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservation id is required", ErrInvalidInput)
	}

	// 1. Получаем текущую бронь и проверяем, что её можно менять
	current, err := uc.getReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkModifiable(current, req.Actor); err != nil {
		return nil, err
	}

	// 2. Применяем патч и валидируем результат
	updated := applyPatch(current, req)
	if err := validatePatched(updated, uc.policy); err != nil {
		uc.logger.Warn("EditReservation: validation failed for reservation id=%d: %v", req.ReservationID, err)
		return nil, err
	}

	// 3. Комната (новая или прежняя)
	room, err := uc.getRoom(ctx, updated.RoomID, updated.RoomID != current.RoomID)
	if err != nil {
		return nil, err
	}
	if room.Capacity > 0 && updated.ParticipantCount > room.Capacity {
		uc.logger.Warn("EditReservation: %d participants exceed capacity %d of room id=%d",
			updated.ParticipantCount, room.Capacity, room.ID)
		return nil, fmt.Errorf("%w: capacity is %d", ErrCapacityExceeded, room.Capacity)
	}

	// 4. Снимок команд/направлений пересобирается только при смене плательщиков
	var snapshots []domain.ParticipantSnapshot
	if req.touchesParticipants() {
		snapshots, err = uc.buildSnapshots(ctx, updated)
		if err != nil {
			return nil, err
		}
	}

	// 5. Блокируем старую и новую пары (комната, день), перепроверяем и сохраняем
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		keys := lockOrder(
			roomDay{roomID: current.RoomID, date: current.Date},
			roomDay{roomID: updated.RoomID, date: updated.Date},
		)
		for _, k := range keys {
			if err := uc.reservationRepo.LockRoomDay(txCtx, k.roomID, k.date); err != nil {
				uc.logger.Error("EditReservation: failed to lock room day: %v", err)
				return fmt.Errorf("%w: failed to lock room day: %w", ErrInternal, err)
			}
		}

		// 5.1. Бронь могли изменить или принять, пока мы её не держали
		fresh, err := uc.getReservation(txCtx, req.ReservationID)
		if err != nil {
			return err
		}
		if err := uc.checkModifiable(fresh, req.Actor); err != nil {
			return err
		}

		candidate := applyPatch(fresh, req)
		if err := validatePatched(candidate, uc.policy); err != nil {
			return err
		}
		if !containsKey(keys, candidate) {
			if err := uc.reservationRepo.LockRoomDay(txCtx, candidate.RoomID, candidate.Date); err != nil {
				return fmt.Errorf("%w: failed to lock room day: %w", ErrInternal, err)
			}
		}
		if snapshots != nil {
			candidate.Participants = snapshots
		}

		// 5.2. Авторитетная проверка пересечения без самой брони
		slot := candidate.Slot()
		slot.ExcludeID = candidate.ID
		existing, err := uc.reservationRepo.GetWithFilter(txCtx, domain.DayFilter(slot.RoomID, slot.Date))
		if err != nil {
			uc.logger.Error("EditReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}
		if conflict := domain.FindConflict(slot, existing); conflict != nil {
			uc.logger.Warn("EditReservation: reservation id=%d slot %s-%s conflicts with reservation id=%d (%s-%s)",
				candidate.ID, candidate.StartTime, candidate.EndTime, conflict.ID, conflict.StartTime, conflict.EndTime)
			return domain.NewConflictError(conflict, room.Name)
		}

		// 5.3. Условное обновление: только пока бронь pending
		if err := uc.reservationRepo.Update(txCtx, candidate); err != nil {
			switch {
			case errors.Is(err, reservationRepo.ErrNotPending):
				uc.logger.Error("EditReservation: reservation id=%d left pending state concurrently", candidate.ID)
				return fmt.Errorf("%w: reservation id=%d is no longer pending", domain.ErrInvalidTransition, candidate.ID)
			case errors.Is(err, reservationRepo.ErrOverlap):
				uc.logger.Warn("EditReservation: overlap rejected by database constraint")
				return domain.NewConflictError(nil, room.Name)
			}
			uc.logger.Error("EditReservation: failed to update reservation id=%d: %v", candidate.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %w", ErrInternal, err)
		}

		updated = candidate
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			uc.metrics.RecordConflict("commit")
		}
		return nil, err
	}

	uc.metrics.RecordTransition("edit")
	uc.logger.Info("EditReservation: successfully updated reservation id=%d", updated.ID)

	// 6. Событие публикуется после фиксации
	event := events.NewEvent(events.EventEdited, updated, req.Actor.PersonID, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("EditReservation: failed to publish event for reservation id=%d: %v", updated.ID, err)
	}

	return &Response{Reservation: updated, Room: room}, nil
}

func (uc *UseCase) getReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("EditReservation: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("EditReservation: failed to get reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
	}
	return res, nil
}

// checkModifiable отказ здесь означает дефект клиента: UI не должен предлагать такую операцию
func (uc *UseCase) checkModifiable(res *domain.Reservation, actor domain.Actor) error {
	if err := res.CheckModifiable(actor); err != nil {
		uc.logger.Error("EditReservation: actor=%d cannot edit reservation id=%d: %v", actor.PersonID, res.ID, err)
		return err
	}
	return nil
}

func (uc *UseCase) getRoom(ctx context.Context, roomID int64, moved bool) (*domain.Room, error) {
	room, err := uc.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("EditReservation: room id=%d not found", roomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("EditReservation: failed to get room id=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}
	if moved && !room.IsActive {
		uc.logger.Warn("EditReservation: room id=%d is inactive", roomID)
		return nil, ErrRoomInactive
	}
	return room, nil
}

func (uc *UseCase) buildSnapshots(ctx context.Context, r *domain.Reservation) ([]domain.ParticipantSnapshot, error) {
	persons, err := uc.personRepo.GetByIDs(ctx, append([]int64{r.OnBehalfOfID}, r.SharedWithIDs...))
	if err != nil {
		uc.logger.Error("EditReservation: failed to get persons: %v", err)
		return nil, fmt.Errorf("%w: failed to get persons: %v", ErrInternal, err)
	}
	snapshots, err := domain.BuildSnapshots(r.OnBehalfOfID, r.SharedWithIDs, persons)
	if err != nil {
		uc.logger.Warn("EditReservation: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrPersonNotFound, err)
	}
	return snapshots, nil
}

func containsKey(keys []roomDay, r *domain.Reservation) bool {
	for _, k := range keys {
		if k.roomID == r.RoomID && domain.SameDay(k.date, r.Date) {
			return true
		}
	}
	return false
}

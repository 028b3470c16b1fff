package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomReservations/internal/availability"
	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomReservations/internal/infra/storage/room"
)

// UseCase проверка занятости слота (живая проверка формы)
// Реализует availability.Checker для локального координатора
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	policy          domain.IntervalPolicy
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	policy domain.IntervalPolicy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		policy:          policy,
		metrics:         metrics,
		logger:          logger,
	}
}

// Check возвращает Available или Conflict с первой пересекающейся бронью
func (uc *UseCase) Check(ctx context.Context, candidate availability.Candidate) (availability.Verdict, error) {
	slot := candidate.Slot()

	// 1. Валидация интервала
	if err := slot.Validate(uc.policy); err != nil {
		uc.logger.Warn("CheckAvailability: invalid candidate: %v", err)
		return availability.Verdict{}, err
	}

	// 2. Получаем комнату
	room, err := uc.roomRepo.GetByID(ctx, slot.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CheckAvailability: room id=%d not found", slot.RoomID)
			return availability.Verdict{}, ErrRoomNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get room id=%d: %v", slot.RoomID, err)
		return availability.Verdict{}, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 3. Брони комнаты на этот день
	existing, err := uc.reservationRepo.GetWithFilter(ctx, domain.DayFilter(slot.RoomID, slot.Date))
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get reservations: %v", err)
		return availability.Verdict{}, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 4. Ищем пересечение
	conflict := domain.FindConflict(slot, existing)
	if conflict != nil {
		uc.metrics.RecordConflict("live")
		uc.metrics.RecordAvailabilityCheck(string(availability.StatusConflict))
		uc.logger.Info("CheckAvailability: room id=%d %s %s-%s conflicts with reservation id=%d",
			slot.RoomID, slot.Date.Format(domain.DateFormat), slot.StartTime, slot.EndTime, conflict.ID)
		return availability.Conflicting(availability.NewConflictInfo(conflict, room.Name)), nil
	}

	uc.metrics.RecordAvailabilityCheck(string(availability.StatusAvailable))
	return availability.Available(), nil
}

package build_monthly_report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/internal/report"
)

// UseCase use case построения отчёта о стоимости комнат по командам и направлениям
type UseCase struct {
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	personRepo      PersonRepository
	txManager       TransactionManager
	metrics         Metrics
	options         report.Options
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	personRepo PersonRepository,
	txManager TransactionManager,
	metrics Metrics,
	options report.Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		personRepo:      personRepo,
		txManager:       txManager,
		metrics:         metrics,
		options:         options,
		logger:          logger,
	}
}

// Execute строит отчёт за календарный месяц
func (uc *UseCase) Execute(ctx context.Context, year int, month time.Month, filter report.StateFilter) (*report.Report, error) {
	period, err := report.MonthPeriod(year, month)
	if err != nil {
		uc.logger.Warn("BuildMonthlyReport: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return uc.BuildRange(ctx, period, filter)
}

// BuildRange строит отчёт за произвольный период
// Все чтения выполняются в одном read-only снимке; при любой ошибке чтения отчёт не строится
func (uc *UseCase) BuildRange(ctx context.Context, period report.Period, filter report.StateFilter) (*report.Report, error) {
	if filter == "" {
		filter = report.FilterActive
	}
	if _, err := report.ParseStateFilter(string(filter)); err != nil {
		uc.logger.Warn("BuildMonthlyReport: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	uc.logger.Info("BuildMonthlyReport: period=%s..%s, state=%s",
		period.From.Format(domain.DateFormat), period.To.Format(domain.DateFormat), filter)

	var in report.Input
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		in, err = uc.load(txCtx, period, filter)
		return err
	})
	if err != nil {
		uc.metrics.RecordReport("error")
		return nil, err
	}

	rep, err := report.Aggregate(in, uc.options)
	if err != nil {
		uc.logger.Error("BuildMonthlyReport: aggregation failed: %v", err)
		uc.metrics.RecordReport("error")
		return nil, err
	}

	uc.metrics.RecordReport("ok")
	uc.logger.Info("BuildMonthlyReport: %d reservations, %d shared, total cost %d cents",
		rep.ReservationCount, rep.SharedReservationCount, rep.Total.CostCents)
	return rep, nil
}

func (uc *UseCase) load(ctx context.Context, period report.Period, filter report.StateFilter) (report.Input, error) {
	from, to := period.From, period.To

	// 1. Брони периода
	reservations, err := uc.reservationRepo.GetWithFilter(ctx, domain.ReservationsFilter{
		StartDate: &from,
		EndDate:   &to,
		States:    filter.States(),
	})
	if err != nil {
		uc.logger.Error("BuildMonthlyReport: failed to get reservations: %v", err)
		return report.Input{}, fmt.Errorf("%w: reservations: %v", domain.ErrDataUnavailable, err)
	}

	// 2. Комнаты броней
	rooms, err := uc.roomRepo.GetByIDs(ctx, roomIDs(reservations))
	if err != nil {
		uc.logger.Error("BuildMonthlyReport: failed to get rooms: %v", err)
		return report.Input{}, fmt.Errorf("%w: rooms: %v", domain.ErrDataUnavailable, err)
	}

	// 3. Сотрудники без снимка на момент бронирования
	persons := map[int64]*domain.Person{}
	if ids := unsnapshottedPersonIDs(reservations); len(ids) > 0 {
		persons, err = uc.personRepo.GetByIDs(ctx, ids)
		if err != nil {
			uc.logger.Error("BuildMonthlyReport: failed to get persons: %v", err)
			return report.Input{}, fmt.Errorf("%w: persons: %v", domain.ErrDataUnavailable, err)
		}
	}

	return report.Input{
		Period:       period,
		StateFilter:  filter,
		Reservations: reservations,
		Rooms:        rooms,
		Persons:      persons,
	}, nil
}

func roomIDs(reservations []*domain.Reservation) []int64 {
	set := make(map[int64]struct{})
	for _, r := range reservations {
		set[r.RoomID] = struct{}{}
	}
	return sortedIDs(set)
}

func unsnapshottedPersonIDs(reservations []*domain.Reservation) []int64 {
	set := make(map[int64]struct{})
	for _, r := range reservations {
		for _, id := range r.CostParticipantIDs() {
			if _, ok := r.Snapshot(id); !ok {
				set[id] = struct{}{}
			}
		}
	}
	return sortedIDs(set)
}

func sortedIDs(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

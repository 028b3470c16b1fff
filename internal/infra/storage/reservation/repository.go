package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomReservations/pkg/psqlbuilder"
)

const (
	reservationsTable  = "room_reservations"
	participantsTable  = "reservation_participants"
	pgExclusionViolate = "23P01"
)

var reservationColumns = []string{
	"id",
	"room_id",
	"reservation_date",
	"start_time",
	"end_time",
	"requester_id",
	"on_behalf_of_id",
	"state",
	"is_shared_cost",
	"shared_with_ids",
	"participant_count",
	"meeting_type",
	"notes",
	"reject_reason",
	"decided_by",
	"decided_at",
	"deleted",
	"delete_reason",
	"deleted_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронями комнат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockRoomDay берёт транзакционную advisory-блокировку на пару (комната, день)
// Все писатели одной комнаты в один день сериализуются до конца транзакции
func (r *Repository) LockRoomDay(ctx context.Context, roomID int64, date time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNoTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	roomKey, dayKey := lockKeys(roomID, date)
	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1, $2)", roomKey, dayKey); err != nil {
		return fmt.Errorf("%w: LockRoomDay - room=%d: %w", ErrExecQuery, roomID, err)
	}
	return nil
}

// Create создает бронь вместе со снимком участников
// Вызывать внутри транзакции, чтобы бронь и участники сохранились атомарно
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(reservationsTable).
		Columns(
			"room_id",
			"reservation_date",
			"start_time",
			"end_time",
			"requester_id",
			"on_behalf_of_id",
			"state",
			"is_shared_cost",
			"shared_with_ids",
			"participant_count",
			"meeting_type",
			"notes",
		).
		Values(
			res.RoomID,
			res.Date,
			res.StartTime,
			res.EndTime,
			res.RequesterID,
			res.OnBehalfOfID,
			res.State,
			res.IsSharedCost,
			pq.Array(sharedIDs(res.SharedWithIDs)),
			res.ParticipantCount,
			res.MeetingType,
			res.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, mapExecError("Create - execute insert", err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	if err := r.insertParticipants(ctx, res.ID, res.Participants); err != nil {
		return nil, err
	}

	return res, nil
}

// GetByID получает бронь по ID (включая удалённые)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(reservationsTable).
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку до смены состояния
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	if err := r.attachParticipants(ctx, []*domain.Reservation{res}); err != nil {
		return nil, err
	}
	return res, nil
}

// GetWithFilter получает брони с фильтрацией по комнате, периоду и состояниям
// Внутри транзакции для одного дня строки блокируются (FOR UPDATE)
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).From(reservationsTable)

	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *filter.RoomID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": domain.DateOnly(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date": domain.DateOnly(*filter.EndDate)})
	}
	if len(filter.States) > 0 {
		states := make([]string, len(filter.States))
		for i, s := range filter.States {
			states[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"state": states})
	}
	if !filter.IncludeDeleted {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"deleted": false})
	}

	selectBuilder = selectBuilder.OrderBy("reservation_date ASC", "start_time ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.IsSingleDay() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapExecError("GetWithFilter - execute query", err)
	}
	defer rows.Close()

	reservations, err := scanReservations(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachParticipants(ctx, reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// Update сохраняет изменённый интервал и участников брони
// Обновление условное: только для pending и не удалённых броней
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(reservationsTable).
		Set("room_id", res.RoomID).
		Set("reservation_date", res.Date).
		Set("start_time", res.StartTime).
		Set("end_time", res.EndTime).
		Set("on_behalf_of_id", res.OnBehalfOfID).
		Set("is_shared_cost", res.IsSharedCost).
		Set("shared_with_ids", pq.Array(sharedIDs(res.SharedWithIDs))).
		Set("participant_count", res.ParticipantCount).
		Set("meeting_type", res.MeetingType).
		Set("notes", res.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(pendingOnly(res.ID)).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotPending
		}
		return mapExecError("Update - execute update", err)
	}

	if err := r.deleteParticipants(ctx, res.ID); err != nil {
		return err
	}
	return r.insertParticipants(ctx, res.ID, res.Participants)
}

// UpdateDecision сохраняет решение по брони (accepted/rejected)
func (r *Repository) UpdateDecision(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(reservationsTable).
		Set("state", res.State).
		Set("reject_reason", res.RejectReason).
		Set("decided_by", res.DecidedBy).
		Set("decided_at", res.DecidedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(pendingOnly(res.ID)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDecision - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "UpdateDecision", query, args)
}

// SoftDelete помечает бронь удалённой с указанием причины
func (r *Repository) SoftDelete(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(reservationsTable).
		Set("deleted", true).
		Set("delete_reason", res.DeleteReason).
		Set("deleted_at", res.DeletedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(pendingOnly(res.ID)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "SoftDelete", query, args)
}

func (r *Repository) execConditional(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapExecError(op+" - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}

func (r *Repository) insertParticipants(ctx context.Context, reservationID int64, participants []domain.ParticipantSnapshot) error {
	if len(participants) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(participantsTable).
		Columns("reservation_id", "position", "person_id", "role", "display_name", "team", "area")
	for _, p := range participants {
		insert = insert.Values(reservationID, p.Position, p.PersonID, p.Role, p.DisplayName, p.Team, p.Area)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertParticipants - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return mapExecError("insertParticipants - execute insert", err)
	}
	return nil
}

func (r *Repository) deleteParticipants(ctx context.Context, reservationID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(participantsTable).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: deleteParticipants - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return mapExecError("deleteParticipants - execute delete", err)
	}
	return nil
}

// attachParticipants загружает снимки участников одним запросом
func (r *Repository) attachParticipants(ctx context.Context, reservations []*domain.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	byID := make(map[int64]*domain.Reservation, len(reservations))
	ids := make([]int64, 0, len(reservations))
	for _, res := range reservations {
		byID[res.ID] = res
		ids = append(ids, res.ID)
	}

	query, args, err := psqlbuilder.Select("reservation_id", "position", "person_id", "role", "display_name", "team", "area").
		From(participantsTable).
		Where(squirrel.Eq{"reservation_id": ids}).
		OrderBy("reservation_id ASC", "position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachParticipants - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return mapExecError("attachParticipants - execute query", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reservationID int64
		var p domain.ParticipantSnapshot
		if err := rows.Scan(&reservationID, &p.Position, &p.PersonID, &p.Role, &p.DisplayName, &p.Team, &p.Area); err != nil {
			return fmt.Errorf("%w: attachParticipants - scan row: %v", ErrScanRow, err)
		}
		if res, ok := byID[reservationID]; ok {
			res.Participants = append(res.Participants, p)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachParticipants - rows error: %v", ErrScanRow, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.RoomID,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.RequesterID,
		&res.OnBehalfOfID,
		&res.State,
		&res.IsSharedCost,
		pq.Array(&res.SharedWithIDs),
		&res.ParticipantCount,
		&res.MeetingType,
		&res.Notes,
		&res.RejectReason,
		&res.DecidedBy,
		&res.DecidedAt,
		&res.Deleted,
		&res.DeleteReason,
		&res.DeletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Date = domain.DateOnly(res.Date)
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time
	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс броней
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

func pendingOnly(id int64) squirrel.And {
	return squirrel.And{
		squirrel.Eq{"id": id},
		squirrel.Eq{"state": string(domain.StatePending)},
		squirrel.Eq{"deleted": false},
	}
}

func sharedIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

// lockKeys раскладывает (комната, день) на два int32 ключа pg_advisory_xact_lock
func lockKeys(roomID int64, date time.Time) (int32, int32) {
	day := domain.DateOnly(date).Unix() / int64(24*time.Hour/time.Second)
	return int32(roomID), int32(day)
}

// mapExecError сохраняет исходную ошибку драйвера в цепочке,
// чтобы txmanager мог распознать serialization failure
func mapExecError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolate {
		return fmt.Errorf("%w: %s: %w", ErrOverlap, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrExecQuery, op, err)
}

package person

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	"github.com/m04kA/SMC-RoomReservations/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomReservations/pkg/psqlbuilder"
)

// Repository репозиторий сотрудников (команда и направление для отчётов)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает сотрудника по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "display_name", "email", "team", "area").
		From("persons").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Person
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.DisplayName, &p.Email, &p.Team, &p.Area)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPersonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan person: %v", ErrScanRow, err)
	}
	return &p, nil
}

// GetByIDs получает сотрудников по списку ID
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Person, error) {
	persons := make(map[int64]*domain.Person, len(ids))
	if len(ids) == 0 {
		return persons, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "display_name", "email", "team", "area").
		From("persons").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.Email, &p.Team, &p.Area); err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}
		persons[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return persons, nil
}

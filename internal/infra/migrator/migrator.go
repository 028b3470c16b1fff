package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

var (
	// ErrMigrate возвращается при ошибке применения миграций
	ErrMigrate = errors.New("migrator: failed to apply migrations")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migrator обёртка над goose, применяющая встроенные миграции
type Migrator struct {
	db     *sql.DB
	fsys   fs.FS
	logger Logger
}

// New создает мигратор для миграций из fsys (корень содержит *.sql)
func New(db *sql.DB, fsys fs.FS, logger Logger) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	return &Migrator{db: db, fsys: fsys, logger: logger}, nil
}

// Up применяет все pending миграции
func (m *Migrator) Up(ctx context.Context) error {
	goose.SetBaseFS(m.fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("%w: %v", ErrMigrate, err)
	}

	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return fmt.Errorf("%w: get version: %v", ErrMigrate, err)
	}

	m.logger.Info("Migrations applied, schema version=%d", version)
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pribylovaa/go-zen-koans/internal/storage"
	"github.com/pribylovaa/go-zen-koans/migrations"
)

// Storage — реализация хранилища коанов поверх PostgreSQL (pgxpool).
type Storage struct {
	db *pgxpool.Pool
}

// New создает новое подключение к PostgreSQL и проверяет его.
func New(ctx context.Context, dbURL string) (*Storage, error) {
	const op = "storage.postgres.New"

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() {
	s.db.Close()
}

// Migrate применяет встроенные миграции схемы (golang-migrate).
// Повторный вызов на актуальной схеме — no-op.
// Возвращает версию схемы после применения.
func (s *Storage) Migrate() (uint, error) {
	const op = "storage.postgres.Migrate"

	sqlDB := stdlib.OpenDBFromPool(s.db)

	driver, err := migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
	if err != nil {
		_ = sqlDB.Close()
		return 0, fmt.Errorf("%s: driver: %w", op, err)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		_ = driver.Close()
		return 0, fmt.Errorf("%s: source: %w", op, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		_ = src.Close()
		_ = driver.Close()
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("%s: up: %w", op, err)
	}

	version, _, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("%s: version: %w", op, err)
	}

	return version, nil
}

// Проверка на соответствие интерфейсам хранилища.
var (
	_ storage.Storage     = (*Storage)(nil)
	_ storage.SeedStorage = (*Storage)(nil)
)

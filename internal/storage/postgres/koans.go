package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/go-zen-koans/internal/models"
	"github.com/pribylovaa/go-zen-koans/internal/storage"
)

// ListKoans возвращает все коаны в порядке created_at ASC, id ASC.
func (s *Storage) ListKoans(ctx context.Context) ([]models.Koan, error) {
	const op = "storage.postgres.ListKoans"

	rows, err := s.db.Query(ctx, `
	SELECT id, text, source, author
	FROM koans
	ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	koans := make([]models.Koan, 0)
	for rows.Next() {
		var k models.Koan
		if err := rows.Scan(&k.ID, &k.Text, &k.Source, &k.Author); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w: %v", op, storage.ErrMalformed, err)
		}

		koans = append(koans, k)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return koans, nil
}

// KoanByID возвращает коан по идентификатору.
// Если запись не найдена — storage.ErrNotFound.
func (s *Storage) KoanByID(ctx context.Context, id string) (*models.Koan, error) {
	const op = "storage.postgres.KoanByID"

	var k models.Koan
	err := s.db.QueryRow(ctx, `
	SELECT id, text, source, author
	FROM koans
	WHERE id = $1
	`, strings.TrimSpace(id)).Scan(&k.ID, &k.Text, &k.Source, &k.Author)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &k, nil
}

// CreateKoan сохраняет коан; пустой ID заменяется на UUID.
// Повторный ID — storage.ErrConflict.
func (s *Storage) CreateKoan(ctx context.Context, koan models.Koan) (*models.Koan, error) {
	const op = "storage.postgres.CreateKoan"

	if strings.TrimSpace(koan.ID) == "" {
		koan.ID = uuid.NewString()
	}

	_, err := s.db.Exec(ctx, `
	INSERT INTO koans (id, text, source, author)
	VALUES ($1, $2, $3, $4)
	`, koan.ID, koan.Text, koan.Source, koan.Author)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapWriteErr(err))
	}

	return &koan, nil
}

// mapWriteErr переводит ошибки PostgreSQL в ошибки слоя storage.
func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return storage.ErrConflict
		case pgerrcode.ForeignKeyViolation:
			return storage.ErrNotFound
		}
	}

	return err
}

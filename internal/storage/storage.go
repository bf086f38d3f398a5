// storage определяет контракты доступа к хранилищу коанов и комментариев.
package storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-zen-koans/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrConflict — конфликт уникальности (повторный сид и т.п.).
	ErrConflict = errors.New("conflict")
	// ErrMalformed — хранилище вернуло запись, которую нельзя разобрать.
	ErrMalformed = errors.New("malformed record")
)

// Storage — плоское хранилище, из которого читает сервис. Только чтение.
type Storage interface {
	// ListKoans возвращает все коаны в собственном порядке хранилища
	// (created_at ASC, id ASC) — он стабилен между вызовами.
	ListKoans(ctx context.Context) ([]models.Koan, error)

	// KoanByID возвращает коан по идентификатору.
	// Если запись не найдена — ErrNotFound.
	KoanByID(ctx context.Context, id string) (*models.Koan, error)

	// CommentsByKoan возвращает неупорядоченный плоский список комментариев коана.
	// Для неизвестного коана — пустой список без ошибки.
	CommentsByKoan(ctx context.Context, koanID string) ([]models.Comment, error)

	// Close закрывает соединения/ресурсы хранилища.
	Close()
}

// Seeder — запись справочных данных. Используется только командой koans-seed.
type Seeder interface {
	// CreateKoan сохраняет коан. Пустой ID генерируется хранилищем.
	// При повторном ID — ErrConflict.
	CreateKoan(ctx context.Context, koan models.Koan) (*models.Koan, error)

	// CreateComment сохраняет комментарий. Пустой ID генерируется хранилищем,
	// нулевая дата заменяется текущим временем.
	// При повторном ID — ErrConflict; неизвестный коан — ErrNotFound.
	CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error)
}

// SeedStorage — хранилище, доступное сидеру.
type SeedStorage interface {
	Storage
	Seeder
}

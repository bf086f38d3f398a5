// service содержит бизнес-логику koans-сервиса: чтение коанов и комментариев
// из хранилища и сборку веток обсуждений.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/go-zen-koans/internal/config"
	"github.com/pribylovaa/go-zen-koans/internal/storage"
	"github.com/pribylovaa/go-zen-koans/internal/threads"
)

// defaultFanout — предел параллельных запросов, если в конфиге он не задан.
const defaultFanout = 8

var (
	// ErrNotFound — коан отсутствует.
	// Транспорт: 404.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument — некорректные входные аргументы.
	// Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnavailable — хранилище недоступно или вернуло ошибку. Повторов нет.
	// Транспорт: 503.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrMalformedData — данные хранилища нарушают предусловия построения веток.
	// Транспорт: 500.
	ErrMalformedData = errors.New("malformed data")
)

// Service — описывает бизнес-логику koans-service.
type Service struct {
	storage storage.Storage
	cfg     config.Config
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, cfg config.Config) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}

func (s *Service) fanout() int {
	if s.cfg.Threads.Fanout <= 0 {
		return defaultFanout
	}

	return s.cfg.Threads.Fanout
}

func (s *Service) policy() threads.Policy {
	return s.cfg.Threads.Policy()
}

// mapStorageErr переводит ошибку хранилища в ошибку сервиса.
// Отмена и дедлайн контекста пробрасываются как есть.
func mapStorageErr(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	case ctx.Err() != nil:
		return fmt.Errorf("%s: %w", op, ctx.Err())
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, storage.ErrMalformed):
		return fmt.Errorf("%s: %w: %w", op, ErrMalformedData, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
}

// isContextErr — ошибка вызвана отменой или дедлайном контекста.
func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

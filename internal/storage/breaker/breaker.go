// breaker оборачивает storage.Storage в circuit breaker: при серии отказов
// хранилища чтения перестают доходить до него и сразу завершаются ErrOpen.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"

	"github.com/pribylovaa/go-zen-koans/internal/config"
	"github.com/pribylovaa/go-zen-koans/internal/models"
	"github.com/pribylovaa/go-zen-koans/internal/storage"
)

// ErrOpen — цепь разомкнута, запрос к хранилищу не выполнялся.
var ErrOpen = errors.New("storage circuit open")

var stateGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "koans",
	Subsystem: "storage",
	Name:      "breaker_state",
	Help:      "Circuit breaker state: 0 closed, 1 half-open, 2 open.",
}, []string{"name"})

// Storage — storage.Storage с circuit breaker.
type Storage struct {
	next storage.Storage
	cb   *gobreaker.CircuitBreaker
}

var _ storage.Storage = (*Storage)(nil)

// New оборачивает next. name попадает в логи и метрики.
func New(next storage.Storage, name string, cfg config.BreakerConfig, log *slog.Logger) *Storage {
	if log == nil {
		log = slog.Default()
	}

	stateGauge.WithLabelValues(name).Set(float64(gobreaker.StateClosed))

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.HalfOpenRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}

			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			stateGauge.WithLabelValues(name).Set(float64(to))
			log.Warn("storage_breaker_state",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
		IsSuccessful: isSuccessful,
	})

	return &Storage{next: next, cb: cb}
}

// isSuccessful — отказом хранилища считаются только ошибки доступности.
// Отсутствие записи, битые данные и отмена вызывающим цепь не размыкают.
func isSuccessful(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrMalformed),
		errors.Is(err, context.Canceled):
		return true
	default:
		return false
	}
}

// State возвращает текущее состояние цепи.
func (s *Storage) State() gobreaker.State {
	return s.cb.State()
}

func (s *Storage) ListKoans(ctx context.Context) ([]models.Koan, error) {
	const op = "breaker.ListKoans"

	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.next.ListKoans(ctx)
	})
	if err != nil {
		return nil, wrap(op, err)
	}

	return res.([]models.Koan), nil
}

func (s *Storage) KoanByID(ctx context.Context, id string) (*models.Koan, error) {
	const op = "breaker.KoanByID"

	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.next.KoanByID(ctx, id)
	})
	if err != nil {
		return nil, wrap(op, err)
	}

	return res.(*models.Koan), nil
}

func (s *Storage) CommentsByKoan(ctx context.Context, koanID string) ([]models.Comment, error) {
	const op = "breaker.CommentsByKoan"

	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.next.CommentsByKoan(ctx, koanID)
	})
	if err != nil {
		return nil, wrap(op, err)
	}

	return res.([]models.Comment), nil
}

// Close закрывает обёрнутое хранилище.
func (s *Storage) Close() {
	s.next.Close()
}

func wrap(op string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s: %w: %w", op, ErrOpen, err)
	}

	return err
}

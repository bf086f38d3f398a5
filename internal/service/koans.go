package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pribylovaa/go-zen-koans/internal/models"
	"github.com/pribylovaa/go-zen-koans/internal/threads"
	"github.com/pribylovaa/go-zen-koans/pkg/log"
)

// ListKoansWithThreads возвращает все коаны в порядке хранилища, каждый —
// с собранными ветками комментариев.
//
// Комментарии коанов запрашиваются параллельно (не больше cfg.Threads.Fanout
// запросов одновременно), результат собирается по исходным индексам.
// Любая ошибка отменяет остальные запросы: частичный результат не возвращается.
//
// Ошибки:
//   - ErrUnavailable — ошибка хранилища;
//   - ErrMalformedData — данные нарушают предусловия построения веток;
//   - context.Canceled / context.DeadlineExceeded — как есть.
func (s *Service) ListKoansWithThreads(ctx context.Context) (out []models.KoanWithComments, err error) {
	const op = "service/koans/ListKoansWithThreads"

	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues("list", statusOf(err)).Observe(time.Since(start).Seconds())
	}()

	lg := log.Op(ctx, op)
	lg.Info("list_koans_request",
		slog.Int("fanout", s.fanout()),
		slog.String("policy", s.policy().String()),
	)

	koans, err := s.storage.ListKoans(ctx)
	if err != nil {
		err = mapStorageErr(ctx, op, err)
		lg.Error("list_koans_storage_error", slog.String("err", err.Error()))

		return nil, err
	}

	out = make([]models.KoanWithComments, len(koans))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanout())

	for i := range koans {
		i := i
		g.Go(func() error {
			kwc, err := s.assemble(gctx, &koans[i])
			if err != nil {
				return err
			}

			out[i] = *kwc
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		// При отмене ctx наружу уходит ошибка контекста.
		if ctx.Err() != nil && !isContextErr(err) {
			err = fmt.Errorf("%s: %w", op, ctx.Err())
		}

		lg.Error("list_koans_failed", slog.String("err", err.Error()))

		return nil, err
	}

	lg.Info("list_koans_ok", slog.Int("koans", len(out)))

	return out, nil
}

// KoanWithThreads возвращает один коан с ветками комментариев.
//
// Ошибки:
//   - ErrInvalidArgument — пустой id;
//   - ErrNotFound — коан отсутствует;
//   - ErrUnavailable / ErrMalformedData — как в ListKoansWithThreads.
func (s *Service) KoanWithThreads(ctx context.Context, id string) (kwc *models.KoanWithComments, err error) {
	const op = "service/koans/KoanWithThreads"

	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues("get", statusOf(err)).Observe(time.Since(start).Seconds())
	}()

	id = strings.TrimSpace(id)
	lg := log.Op(ctx, op, slog.String("koan_id", id))

	if id == "" {
		lg.Warn("koan_invalid_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	lg.Info("koan_request")

	koan, err := s.storage.KoanByID(ctx, id)
	if err != nil {
		err = mapStorageErr(ctx, op, err)
		if errors.Is(err, ErrNotFound) {
			lg.Warn("koan_not_found")
		} else {
			lg.Error("koan_storage_error", slog.String("err", err.Error()))
		}

		return nil, err
	}

	kwc, err = s.assemble(ctx, koan)
	if err != nil {
		lg.Error("koan_assemble_failed", slog.String("err", err.Error()))
		return nil, err
	}

	lg.Info("koan_ok", slog.Int("comments", countComments(kwc.Comments)))

	return kwc, nil
}

// assemble запрашивает комментарии коана и собирает из них ветки.
func (s *Service) assemble(ctx context.Context, koan *models.Koan) (*models.KoanWithComments, error) {
	const op = "service/koans/assemble"

	lg := log.Op(ctx, op, slog.String("koan_id", koan.ID))

	comments, err := s.storage.CommentsByKoan(ctx, koan.ID)
	if err != nil {
		return nil, mapStorageErr(ctx, op, err)
	}

	p := s.policy()
	kwc, st, err := threads.AssembleWithStats(koan, comments, threads.WithPolicy(p))
	if err != nil {
		lg.Error("threads_precondition_failed", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrMalformedData, err)
	}

	recordStats(p, st)

	if st.Orphans > 0 || st.CycleBreaks > 0 {
		lg.Warn("threads_inconsistent_data",
			slog.Int("orphans", st.Orphans),
			slog.Int("cycle_breaks", st.CycleBreaks),
			slog.Int("dropped", st.Dropped),
			slog.String("policy", p.String()),
		)
	}

	lg.Debug("threads_built",
		slog.Int("total", st.Total),
		slog.Int("roots", st.Roots),
		slog.Int("max_depth", st.MaxDepth),
	)

	return kwc, nil
}

// countComments — число узлов во всех ветках.
func countComments(roots []models.CommentWithReplies) int {
	n := 0
	for i := range roots {
		n += roots[i].Count()
	}

	return n
}

// seed наполняет хранилище демонстрационными коанами и ветками комментариев.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/go-zen-koans/internal/storage"
	"github.com/pribylovaa/go-zen-koans/pkg/log"
)

// Result — итог одного запуска.
type Result struct {
	Koans    int
	Comments int
	// Skipped — данные уже были в хранилище, ничего не записано.
	Skipped bool
}

// Run записывает Koans и Comments через s.
// Комментарии получают даты base, base+1s, ... в порядке создания.
//
// Если первый коан уже существует (storage.ErrConflict), запуск считается
// повторным и завершается без ошибки с Skipped=true. Конфликт на любой
// другой записи — ошибка: хранилище заполнено частично.
func Run(ctx context.Context, s storage.Seeder, base time.Time) (Result, error) {
	const op = "seed.Run"

	lg := log.Op(ctx, op)
	lg.Info("seed_started")

	var res Result

	for i, k := range Koans() {
		if _, err := s.CreateKoan(ctx, k); err != nil {
			if i == 0 && errors.Is(err, storage.ErrConflict) {
				lg.Info("seed_skipped_already_present", slog.String("koan_id", k.ID))
				return Result{Skipped: true}, nil
			}

			return res, fmt.Errorf("%s: koan %q: %w", op, k.ID, err)
		}

		res.Koans++
	}

	lg.Info("seed_koans_created", slog.Int("count", res.Koans))

	for i, c := range Comments() {
		c.Date = base.Add(time.Duration(i) * time.Second).UTC()

		if _, err := s.CreateComment(ctx, c); err != nil {
			return res, fmt.Errorf("%s: comment %q: %w", op, c.ID, err)
		}

		res.Comments++
	}

	lg.Info("seed_completed",
		slog.Int("koans", res.Koans),
		slog.Int("comments", res.Comments),
	)

	return res, nil
}

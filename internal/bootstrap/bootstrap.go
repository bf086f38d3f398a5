// bootstrap — общая инициализация бинарников: логгер и хранилище по конфигу.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pribylovaa/go-zen-koans/internal/config"
	"github.com/pribylovaa/go-zen-koans/internal/storage"
	"github.com/pribylovaa/go-zen-koans/internal/storage/mongo"
	"github.com/pribylovaa/go-zen-koans/internal/storage/postgres"
)

// Константы окружения.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Logger выбирает обработчик slog по окружению:
// local — текст/debug, dev — JSON/debug, prod — JSON/info.
func Logger(env string, w io.Writer) *slog.Logger {
	switch env {
	case EnvLocal:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case EnvDev:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case EnvProd:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// OpenStorage подключается к хранилищу cfg.DB.Driver в пределах cfg.DB.ConnectTimeout.
// Для postgres при migrate=true применяются встроенные миграции.
func OpenStorage(ctx context.Context, cfg *config.Config, migrate bool, lg *slog.Logger) (storage.SeedStorage, error) {
	const op = "bootstrap.OpenStorage"

	ctx, cancel := context.WithTimeout(ctx, cfg.DB.ConnectTimeout)
	defer cancel()

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		st, err := postgres.New(ctx, cfg.DB.URL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		lg.Info("postgres_connected")

		if !migrate {
			return st, nil
		}

		version, err := st.Migrate()
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		lg.Info("postgres_migrated", slog.Uint64("version", uint64(version)))

		return st, nil

	case config.DriverMongo:
		st, err := mongo.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		lg.Info("mongo_connected")

		return st, nil

	default:
		return nil, fmt.Errorf("%s: unknown db driver %q", op, cfg.DB.Driver)
	}
}

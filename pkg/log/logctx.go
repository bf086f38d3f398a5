// log переносит *slog.Logger через context.Context между слоями сервиса:
// транспорт кладёт логгер запроса, сервис и хранилище его достают.
package log

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// Into возвращает контекст с логгером l.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// From возвращает логгер из ctx. Без логгера (или с nil) — slog.Default().
func From(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || l == nil {
		return slog.Default()
	}

	return l
}

// Op — логгер из ctx с атрибутом op и дополнительными attrs.
func Op(ctx context.Context, op string, args ...any) *slog.Logger {
	return From(ctx).With(append([]any{slog.String("op", op)}, args...)...)
}

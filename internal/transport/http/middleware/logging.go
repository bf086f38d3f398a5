package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pribylovaa/go-zen-koans/pkg/log"
)

// Logging кладёт в контекст логгер запроса (с request_id) и по завершении
// пишет одну запись "http". Ответы 5xx пишутся уровнем Error.
func Logging(base *slog.Logger) Middleware {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lg := base
			if rid := RequestIDFrom(r.Context()); rid != "" {
				lg = lg.With(slog.String("request_id", rid))
			}
			ctx := log.Into(r.Context(), lg)

			rec := record(w)
			started := time.Now()
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.statusCode()
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			lg.LogAttrs(ctx, level, "http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", rec.bytes),
				slog.Duration("dur", time.Since(started)),
			)
		})
	}
}

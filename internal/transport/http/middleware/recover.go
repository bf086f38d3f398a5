package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pribylovaa/go-zen-koans/internal/transport/http/apierrors"
	"github.com/pribylovaa/go-zen-koans/pkg/log"
)

// errPanic не раскрывает клиенту причину паники: apierrors отдаёт 500/internal.
var errPanic = errors.New("handler panic")

// Recover превращает panic обработчика в ответ 500 internal.
// http.ErrAbortHandler пробрасывается дальше, net/http обрывает соединение.
// Если заголовок уже отправлен, второй ответ не пишется.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := record(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				log.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "panic",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("reason", v),
				)

				if !rec.headerSent() {
					apierrors.WriteError(rec, r, errPanic)
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

// interceptors — серверные gRPC-интерсепторы koans-service:
// таймаут, перехват паник и логирование для unary и stream вызовов.
package interceptors

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// WithTimeout возвращает unary-интерсептор, который навешивает таймаут d на контекст
// запроса при его отсутствии. Существующий дедлайн не переопределяется; d <= 0 — no-op.
//
// Stream-вызовы (health Watch, reflection) долгоживущие и таймаутом не ограничиваются.
func WithTimeout(d time.Duration) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if d <= 0 {
			return handler(ctx, req)
		}

		if _, ok := ctx.Deadline(); ok {
			return handler(ctx, req)
		}

		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		return handler(ctx, req)
	}
}

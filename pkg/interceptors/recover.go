package interceptors

import (
	"context"
	"log/slog"
	"runtime/debug"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pribylovaa/go-zen-koans/pkg/log"
)

// errInternal — нейтральный ответ клиенту после паники.
var errInternal = status.Error(codes.Internal, "internal server error")

// Recover возвращает unary-интерсептор, который перехватывает паники в обработчиках,
// логирует их (метод и стек) и отвечает codes.Internal без деталей.
// Логгер: из контекста (pkg/log), иначе base, иначе slog.Default().
func Recover(base *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logPanic(pickLogger(ctx, base), info.FullMethod, r)
				resp, err = nil, errInternal
			}
		}()

		return handler(ctx, req)
	}
}

// StreamRecover — то же для stream-вызовов.
func StreamRecover(base *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logPanic(pickLogger(ss.Context(), base), info.FullMethod, r)
				err = errInternal
			}
		}()

		return handler(srv, ss)
	}
}

func pickLogger(ctx context.Context, base *slog.Logger) *slog.Logger {
	l := log.From(ctx)
	if l == slog.Default() && base != nil {
		return base
	}

	return l
}

func logPanic(l *slog.Logger, method string, r any) {
	l.Error("panic_recovered",
		slog.String("method", method),
		slog.Any("panic", r),
		slog.String("stack", string(debug.Stack())),
	)
}

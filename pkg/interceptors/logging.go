package interceptors

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/pribylovaa/go-zen-koans/pkg/log"
)

// healthPrefix — методы grpc.health.v1 опрашиваются оркестратором часто
// и логируются уровнем Debug.
const healthPrefix = "/grpc.health.v1.Health/"

// UnaryLoggingInterceptor логирует unary-вызовы и кладёт обогащённый логгер в контекст.
//
// Формат: одна запись msg="grpc" с request_id (из x-request-id или UUID),
// method, peer, code и dur. Ошибки (code != OK) пишутся уровнем Warn.
func UnaryLoggingInterceptor(base *slog.Logger) grpc.UnaryServerInterceptor {
	if base == nil {
		base = slog.Default()
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		l := requestLogger(ctx, base, info.FullMethod)
		resp, err := handler(log.Into(ctx, l), req)

		logCall(ctx, l, info.FullMethod, err, start)

		return resp, err
	}
}

// StreamLoggingInterceptor — то же для stream-вызовов; запись пишется по завершении стрима.
func StreamLoggingInterceptor(base *slog.Logger) grpc.StreamServerInterceptor {
	if base == nil {
		base = slog.Default()
	}

	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		ctx := ss.Context()

		l := requestLogger(ctx, base, info.FullMethod)
		err := handler(srv, &loggedStream{ServerStream: ss, ctx: log.Into(ctx, l)})

		logCall(ctx, l, info.FullMethod, err, start)

		return err
	}
}

// loggedStream подменяет контекст стрима на контекст с логгером.
type loggedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *loggedStream) Context() context.Context {
	return s.ctx
}

func requestLogger(ctx context.Context, base *slog.Logger, method string) *slog.Logger {
	var rid string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get("x-request-id"); len(v) > 0 && v[0] != "" {
			rid = v[0]
		}
	}
	if rid == "" {
		rid = uuid.NewString()
	}

	peerStr := "-"
	if p, ok := peer.FromContext(ctx); ok && p != nil && p.Addr != nil {
		peerStr = p.Addr.String()
	}

	return base.With(
		slog.String("request_id", rid),
		slog.String("method", method),
		slog.String("peer", peerStr),
	)
}

func logCall(ctx context.Context, l *slog.Logger, method string, err error, start time.Time) {
	level := slog.LevelInfo
	switch {
	case err != nil:
		level = slog.LevelWarn
	case strings.HasPrefix(method, healthPrefix):
		level = slog.LevelDebug
	}

	l.LogAttrs(ctx, level, "grpc",
		slog.String("code", status.Code(err).String()),
		slog.Duration("dur", time.Since(start)),
	)
}

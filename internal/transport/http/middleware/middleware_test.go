package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-zen-koans/internal/transport/http/apierrors"
	"github.com/pribylovaa/go-zen-koans/pkg/log"
)

// capHandler — тестовый slog.Handler, который:
//   - аккумулирует базовые attrs, приходящие через Logger.With(...);
//   - собирает attrs последней записи в map[string]any.
type capHandler struct {
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)

	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})

	h.count++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out

	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) > 0 {
		h.base = append(h.base, attrs...)
	}

	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func TestChain_Order(t *testing.T) {
	var order []string

	mk := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+">")
				next.ServeHTTP(w, r)
				order = append(order, "<"+name)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mk("m1"), mk("m2"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"m1>", "m2>", "handler", "<m2", "<m1"}, order)
}

func TestRequestID_Generates(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
		require.Equal(t, seen, r.Header.Get(HeaderRequestID))
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, seen, 36)
	require.Equal(t, seen, w.Header().Get(HeaderRequestID))
}

func TestRequestID_KeepsIncoming(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, "abc-123", seen)
	require.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestRequestID_ReplacesOversized(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, strings.Repeat("x", maxRequestIDLen+1))
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, seen, 36)
}

func TestLogging_RequestScopedLogger(t *testing.T) {
	hcap := &capHandler{}
	l := slog.New(hcap)

	var inner *slog.Logger
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = log.From(r.Context())
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hi"))
	}), RequestID(), Logging(l))

	req := httptest.NewRequest(http.MethodGet, "/api/koans", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, inner)
	require.Equal(t, 1, hcap.count)
	require.Equal(t, "http", hcap.lastMsg)
	require.Equal(t, slog.LevelInfo, hcap.lastLvl)
	require.Equal(t, "rid-1", hcap.attrs["request_id"])
	require.Equal(t, "/api/koans", hcap.attrs["path"])
	require.EqualValues(t, http.StatusTeapot, hcap.attrs["status"])
	require.EqualValues(t, 2, hcap.attrs["bytes"])
}

func TestLogging_ServerErrorLevel(t *testing.T) {
	hcap := &capHandler{}
	h := Logging(slog.New(hcap))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, slog.LevelError, hcap.lastLvl)
}

func TestRecover_WritesInternal(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("db password leaked")
	}), Recover(), RequestID())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "rid-p")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "password")

	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "internal", resp.Error.Code)
	require.Equal(t, "rid-p", resp.Error.RequestID)
}

// Если заголовок уже отправлен — второй ответ не пишется.
func TestRecover_AfterHeaderWritten(t *testing.T) {
	h := Recover()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		panic("late")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Body.String())
}

func TestRecover_ReraisesAbortHandler(t *testing.T) {
	h := Recover()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	require.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestTimeout(t *testing.T) {
	t.Run("sets deadline", func(t *testing.T) {
		var dl time.Time
		var ok bool
		h := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			dl, ok = r.Context().Deadline()
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.True(t, ok)
		require.WithinDuration(t, time.Now().Add(time.Second), dl, 200*time.Millisecond)
	})

	t.Run("keeps existing deadline", func(t *testing.T) {
		parent, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		want, _ := parent.Deadline()

		var got time.Time
		h := Timeout(time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = r.Context().Deadline()
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil).WithContext(parent))
		require.Equal(t, want, got)
	})

	t.Run("zero is noop", func(t *testing.T) {
		var ok bool
		h := Timeout(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok = r.Context().Deadline()
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.False(t, ok)
	})
}

func TestRecorder(t *testing.T) {
	w := httptest.NewRecorder()
	rec := record(w)
	require.Same(t, rec, record(rec))
	require.False(t, rec.headerSent())
	require.Equal(t, http.StatusOK, rec.statusCode())

	rec.WriteHeader(http.StatusAccepted)
	rec.WriteHeader(http.StatusTeapot)
	_, _ = rec.Write([]byte("abc"))

	require.Equal(t, http.StatusAccepted, rec.statusCode())
	require.Equal(t, 3, rec.bytes)
	require.NoError(t, http.NewResponseController(rec).Flush())
	require.True(t, w.Flushed)
}

// middleware — net/http мидлвары HTTP API koans-service.
package middleware

import (
	"net/http"
)

// Middleware — стандартный net/http мидлвар.
type Middleware func(http.Handler) http.Handler

// Chain оборачивает h так, что первый мидлвар из списка выполняется первым.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// recorder запоминает первый отправленный статус и число записанных байт.
// Один recorder разделяется всеми мидлварами запроса.
type recorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

// record возвращает recorder для w, переиспользуя уже обёрнутый.
func record(w http.ResponseWriter) *recorder {
	if rec, ok := w.(*recorder); ok {
		return rec
	}
	return &recorder{ResponseWriter: w}
}

func (rec *recorder) WriteHeader(code int) {
	if rec.status == 0 {
		rec.status = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *recorder) Write(p []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}

	n, err := rec.ResponseWriter.Write(p)
	rec.bytes += n
	return n, err
}

// Unwrap открывает исходный writer для http.ResponseController.
func (rec *recorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// headerSent — заголовок ответа уже ушёл клиенту.
func (rec *recorder) headerSent() bool {
	return rec.status != 0
}

// statusCode — итоговый статус; обработчик без записи отвечает 200.
func (rec *recorder) statusCode() int {
	if rec.status == 0 {
		return http.StatusOK
	}
	return rec.status
}

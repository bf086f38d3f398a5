package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pribylovaa/go-zen-koans/internal/threads"
)

var (
	// threadsBuilt — число собранных коанов с ветками.
	// Labels: policy (surface, drop)
	threadsBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "koans",
		Subsystem: "threads",
		Name:      "built_total",
		Help:      "Total koans assembled with comment threads",
	}, []string{"policy"})

	// orphansFound — комментарии со ссылкой на отсутствующего родителя.
	orphansFound = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "koans",
		Subsystem: "threads",
		Name:      "orphans_total",
		Help:      "Total comments whose parent is absent",
	})

	// cycleBreaks — разорванные рёбра к родителю из-за циклов.
	cycleBreaks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "koans",
		Subsystem: "threads",
		Name:      "cycle_breaks_total",
		Help:      "Total parent edges cut to break reply cycles",
	})

	// droppedNodes — узлы, отброшенные политикой drop.
	droppedNodes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "koans",
		Subsystem: "threads",
		Name:      "dropped_total",
		Help:      "Total comments dropped by the drop policy",
	})

	// requestDuration — длительность операций сервиса.
	// Labels: op (list, get), status (ok, not_found, unavailable, malformed, canceled, invalid)
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "koans",
		Subsystem: "service",
		Name:      "request_duration_seconds",
		Help:      "Service operation latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"op", "status"})
)

// recordStats переносит статистику одного построения в метрики.
func recordStats(p threads.Policy, st threads.Stats) {
	threadsBuilt.WithLabelValues(p.String()).Inc()
	orphansFound.Add(float64(st.Orphans))
	cycleBreaks.Add(float64(st.CycleBreaks))
	droppedNodes.Add(float64(st.Dropped))
}

// statusOf — метка статуса для requestDuration.
func statusOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case isContextErr(err):
		return "canceled"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid"
	case errors.Is(err, ErrMalformedData):
		return "malformed"
	default:
		return "unavailable"
	}
}

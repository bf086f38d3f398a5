// cache — read-through кэш собранных веток в Redis.
// Ошибки Redis не прерывают запрос: кэш пропускается, ответ строится заново.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/pribylovaa/go-zen-koans/internal/models"
	"github.com/pribylovaa/go-zen-koans/pkg/log"
)

var lookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "koans",
	Subsystem: "cache",
	Name:      "lookups_total",
	Help:      "Thread cache lookups by result (hit, miss, error).",
}, []string{"result"})

// KoansService — источник собранных веток.
type KoansService interface {
	ListKoansWithThreads(ctx context.Context) ([]models.KoanWithComments, error)
	KoanWithThreads(ctx context.Context, id string) (*models.KoanWithComments, error)
}

// Koans кэширует ответы KoansService. Ошибки не кэшируются.
type Koans struct {
	next   KoansService
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// Open подключается к Redis по URL и проверяет соединение.
func Open(ctx context.Context, url string) (*redis.Client, error) {
	const op = "cache.Open"

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("%s: parse redis url: %w", op, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return client, nil
}

// New оборачивает next. prefix отделяет ключи разных конфигураций
// (например, политик сборки) в одном Redis.
func New(next KoansService, client *redis.Client, ttl time.Duration, prefix string) *Koans {
	return &Koans{
		next:   next,
		client: client,
		ttl:    ttl,
		prefix: prefix,
	}
}

func (c *Koans) listKey() string { return c.prefix + "list" }

func (c *Koans) koanKey(id string) string { return c.prefix + "koan:" + id }

func (c *Koans) ListKoansWithThreads(ctx context.Context) ([]models.KoanWithComments, error) {
	key := c.listKey()

	var out []models.KoanWithComments
	if c.get(ctx, key, &out) {
		return out, nil
	}

	out, err := c.next.ListKoansWithThreads(ctx)
	if err != nil {
		return nil, err
	}

	c.set(ctx, key, out)

	return out, nil
}

func (c *Koans) KoanWithThreads(ctx context.Context, id string) (*models.KoanWithComments, error) {
	var out models.KoanWithComments
	if key := strings.TrimSpace(id); key != "" && c.get(ctx, c.koanKey(key), &out) {
		return &out, nil
	}

	kwc, err := c.next.KoanWithThreads(ctx, id)
	if err != nil {
		return nil, err
	}

	c.set(ctx, c.koanKey(kwc.ID), kwc)

	return kwc, nil
}

// get возвращает true, если значение найдено и разобрано в dst.
func (c *Koans) get(ctx context.Context, key string, dst any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		lookups.WithLabelValues("miss").Inc()
		return false
	case err != nil:
		lookups.WithLabelValues("error").Inc()
		log.From(ctx).Warn("cache_get_failed", slog.String("key", key), slog.String("err", err.Error()))
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		lookups.WithLabelValues("error").Inc()
		log.From(ctx).Warn("cache_decode_failed", slog.String("key", key), slog.String("err", err.Error()))
		return false
	}

	lookups.WithLabelValues("hit").Inc()

	return true
}

func (c *Koans) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.From(ctx).Warn("cache_encode_failed", slog.String("key", key), slog.String("err", err.Error()))
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.From(ctx).Warn("cache_set_failed", slog.String("key", key), slog.String("err", err.Error()))
	}
}

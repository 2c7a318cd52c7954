// Package cache provides the read-through response cache that sits in front of the paid analysis API.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"nlp-dashboard/internal/common/metrics"
)

// Cache is a byte-oriented key-value store with per-entry expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

// RedisCache stores entries in Redis.
type RedisCache struct {
	client redis.Cmdable
}

func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// NopCache never stores anything; used when caching is disabled.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Key builds "<prefix>:<namespace>:<sha256(parts)>". Parts are length-prefixed so that
// ("ab", "c") and ("a", "bc") never collide.
func Key(prefix, namespace string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%d:%s;", len(p), p)
	}
	return prefix + ":" + namespace + ":" + hex.EncodeToString(h.Sum(nil))
}

// Memoizer wraps a Cache with JSON encoding, a fixed TTL and fail-open error handling.
type Memoizer struct {
	cache  Cache
	ttl    time.Duration
	prefix string
	logger Logger
}

func NewMemoizer(c Cache, ttl time.Duration, prefix string, log Logger) *Memoizer {
	if c == nil {
		c = NopCache{}
	}
	return &Memoizer{cache: c, ttl: ttl, prefix: prefix, logger: log}
}

// Key builds a cache key under the memoizer's prefix.
func (m *Memoizer) Key(namespace string, parts ...string) string {
	return Key(m.prefix, namespace, parts...)
}

// Memoize returns the cached value for key, or calls fn and caches its result.
// Errors from fn are returned and never cached. Cache failures are logged and bypassed.
func Memoize[T any](ctx context.Context, m *Memoizer, namespace, key string, fn func(context.Context) (T, error)) (T, error) {
	if raw, ok, err := m.cache.Get(ctx, key); err != nil {
		m.warn("cache read failed", namespace, key, err)
	} else if ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err != nil {
			m.warn("cache entry undecodable", namespace, key, err)
		} else {
			metrics.CacheLookups.WithLabelValues(namespace, "hit").Inc()
			return cached, nil
		}
	}
	metrics.CacheLookups.WithLabelValues(namespace, "miss").Inc()

	value, err := fn(ctx)
	if err != nil {
		return value, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		m.warn("cache encode failed", namespace, key, err)
		return value, nil
	}
	if err := m.cache.Set(ctx, key, raw, m.ttl); err != nil {
		m.warn("cache write failed", namespace, key, err)
	}
	return value, nil
}

func (m *Memoizer) warn(msg, namespace, key string, err error) {
	if m.logger == nil {
		return
	}
	m.logger.Warn(msg, map[string]interface{}{
		"namespace": namespace,
		"key":       key,
		"error":     err.Error(),
	})
}

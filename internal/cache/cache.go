package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/graxinc/errutil"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "keystone:"

// Cache stores rendered responses in Redis when one is configured, falling
// back to process memory while Redis is missing or failing.
type Cache struct {
	c  *redis.Client
	l  *slog.Logger
	cb *CircuitBreaker
	fb *FallbackCache
}

// NewCache connects to url. An empty url yields a memory-only cache.
func NewCache(url string, l *slog.Logger) (*Cache, error) {
	c := Cache{
		l:  l,
		cb: NewCircuitBreaker(5, 30*time.Second),
		fb: NewFallbackCache(256),
	}

	if url == "" {
		l.Info("no cache url configured, using memory only")
		return &c, nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, errutil.With(err)
	}
	c.c = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.c.Ping(ctx).Err(); err != nil {
		l.Warn("cache unreachable at startup", "error", err)
		c.cb.RecordFailure()
	}

	return &c, nil
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.c != nil && c.cb.Allow() {
		data, err := c.c.Get(ctx, keyPrefix+key).Bytes()
		switch {
		case err == nil:
			c.cb.RecordSuccess()
			return data, true
		case errors.Is(err, redis.Nil):
			c.cb.RecordSuccess()
			return nil, false
		default:
			c.cb.RecordFailure()
			c.l.Warn("error reading cache, using fallback", "key", key, "error", err)
		}
	}

	return c.fb.Get(key)
}

func (c *Cache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	c.fb.Set(key, data, ttl)

	if c.c == nil || !c.cb.Allow() {
		return
	}

	if err := c.c.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		c.cb.RecordFailure()
		c.l.Warn("error writing cache", "key", key, "error", err)
		return
	}
	c.cb.RecordSuccess()
}

func (c *Cache) Close() error {
	c.fb.Close()
	if c.c == nil {
		return nil
	}
	return c.c.Close()
}

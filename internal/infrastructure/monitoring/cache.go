package monitoring

import (
	"context"
	"errors"
	"time"

	"github.com/nutrimate/v1/internal/ports/outbound"
)

// InstrumentedCache counts every call made to the wrapped cache
type InstrumentedCache struct {
	next    outbound.CacheRepository
	metrics *MetricsCollector
}

// NewInstrumentedCache wraps next
func NewInstrumentedCache(next outbound.CacheRepository, metrics *MetricsCollector) *InstrumentedCache {
	return &InstrumentedCache{next: next, metrics: metrics}
}

func (c *InstrumentedCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.next.Get(ctx, key)
	switch {
	case errors.Is(err, outbound.ErrCacheMiss):
		c.metrics.RecordCacheOperation("get", "miss")
	case err != nil:
		c.metrics.RecordCacheOperation("get", "error")
	default:
		c.metrics.RecordCacheOperation("get", "hit")
	}
	return value, err
}

func (c *InstrumentedCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.next.Set(ctx, key, value, ttl)
	c.metrics.RecordCacheOperation("set", result(err))
	return err
}

func (c *InstrumentedCache) Delete(ctx context.Context, key string) error {
	err := c.next.Delete(ctx, key)
	c.metrics.RecordCacheOperation("delete", result(err))
	return err
}

func (c *InstrumentedCache) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := c.next.Exists(ctx, key)
	c.metrics.RecordCacheOperation("exists", result(err))
	return ok, err
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var _ outbound.CacheRepository = (*InstrumentedCache)(nil)

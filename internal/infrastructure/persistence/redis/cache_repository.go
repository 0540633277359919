// Package redis provides the redis-backed cache repository
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/nutrimate/v1/internal/infrastructure/cache"
	"github.com/nutrimate/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// CacheRepository implements outbound.CacheRepository on a RedisClient.
// Every key is namespaced with the configured prefix.
type CacheRepository struct {
	client *cache.RedisClient
	prefix string
	logger *zap.Logger
}

// NewCacheRepository creates a new redis cache repository
func NewCacheRepository(client *cache.RedisClient, prefix string, logger *zap.Logger) *CacheRepository {
	return &CacheRepository{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

// Get retrieves a value or outbound.ErrCacheMiss
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key))
	if errors.Is(err, cache.ErrKeyNotFound) {
		return nil, outbound.ErrCacheMiss
	}
	if err != nil {
		r.logger.Debug("Cache get failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return data, nil
}

// Set stores a value with TTL
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return r.client.Set(ctx, r.key(key), value, ttl)
}

// Delete removes a value from cache
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	return r.client.Delete(ctx, r.key(key))
}

// Exists checks if a key exists in cache
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CacheRepository) key(k string) string {
	return r.prefix + k
}

var _ outbound.CacheRepository = (*CacheRepository)(nil)

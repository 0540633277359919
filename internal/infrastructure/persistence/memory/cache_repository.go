// Package memory provides the in-process cache used when redis is disabled
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/nutrimate/v1/internal/ports/outbound"
)

// DefaultCleanupInterval is how often expired entries are swept
const DefaultCleanupInterval = time.Minute

type cacheItem struct {
	value     []byte
	expiresAt time.Time
}

// expired reports whether the item has a deadline that has passed
func (i cacheItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// CacheRepository implements outbound.CacheRepository on a map
type CacheRepository struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

// NewCacheRepository creates the cache and starts the expiry sweeper.
// Call Close to stop it.
func NewCacheRepository(cleanupInterval time.Duration) *CacheRepository {
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}

	repo := &CacheRepository{
		data: make(map[string]cacheItem),
		now:  time.Now,
		stop: make(chan struct{}),
	}

	go repo.cleanup(cleanupInterval)

	return repo
}

// Get retrieves a value or outbound.ErrCacheMiss
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mutex.RLock()
	item, exists := r.data[key]
	r.mutex.RUnlock()

	if !exists {
		return nil, outbound.ErrCacheMiss
	}

	if item.expired(r.now()) {
		r.evict(key, item.expiresAt)
		return nil, outbound.ErrCacheMiss
	}

	out := make([]byte, len(item.value))
	copy(out, item.value)
	return out, nil
}

// Set stores a copy of value. A non-positive ttl never expires.
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	item := cacheItem{value: make([]byte, len(value))}
	copy(item.value, value)
	if ttl > 0 {
		item.expiresAt = r.now().Add(ttl)
	}

	r.mutex.Lock()
	r.data[key] = item
	r.mutex.Unlock()

	return nil
}

// Delete removes a key from cache
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.data, key)
	return nil
}

// Exists checks if a live key exists in cache
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	r.mutex.RLock()
	item, exists := r.data[key]
	r.mutex.RUnlock()

	if !exists {
		return false, nil
	}
	if item.expired(r.now()) {
		r.evict(key, item.expiresAt)
		return false, nil
	}
	return true, nil
}

// Len returns the number of stored entries, expired ones included
func (r *CacheRepository) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.data)
}

// Close stops the sweeper
func (r *CacheRepository) Close() error {
	r.once.Do(func() { close(r.stop) })
	return nil
}

// evict deletes key only if it was not rewritten since it was read
func (r *CacheRepository) evict(key string, expiresAt time.Time) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if current, ok := r.data[key]; ok && current.expiresAt.Equal(expiresAt) {
		delete(r.data, key)
	}
}

func (r *CacheRepository) sweep() {
	now := r.now()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	for key, item := range r.data {
		if item.expired(now) {
			delete(r.data, key)
		}
	}
}

func (r *CacheRepository) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.stop:
			return
		}
	}
}

var _ outbound.CacheRepository = (*CacheRepository)(nil)

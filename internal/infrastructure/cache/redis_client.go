// Package cache provides the Redis connection used by the profile cache and
// the token revocation list.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nutrimate/v1/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	// ErrKeyNotFound is returned by Get when redis answers with nil
	ErrKeyNotFound = errors.New("key not found in cache")
	// ErrCircuitOpen is returned while the breaker rejects calls
	ErrCircuitOpen = errors.New("redis circuit breaker is open")
)

// RedisClient wraps a go-redis client with a circuit breaker and basic
// operation counters.
type RedisClient struct {
	client  redis.UniversalClient
	breaker *CircuitBreaker
	stats   *counters
	logger  *zap.Logger
}

// Stats tracks Redis command outcomes
type Stats struct {
	TotalCommands   int64         `json:"total_commands"`
	FailedCommands  int64         `json:"failed_commands"`
	Hits            int64         `json:"hits"`
	Misses          int64         `json:"misses"`
	AvgResponseTime time.Duration `json:"avg_response_time"`
}

type counters struct {
	mu sync.Mutex
	Stats
}

// NewRedisClient dials redis using cfg and verifies the connection with a PING.
func NewRedisClient(cfg *config.RedisConfig, logger *zap.Logger) (*RedisClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.Database,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolTimeout:  10 * time.Second,
	})

	rc := NewRedisClientFrom(client, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := rc.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis client initialized",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.Int("database", cfg.Database))

	return rc, nil
}

// NewRedisClientFrom wraps an existing go-redis client
func NewRedisClientFrom(client redis.UniversalClient, logger *zap.Logger) *RedisClient {
	return &RedisClient{
		client:  client,
		breaker: NewCircuitBreaker(5, 30*time.Second),
		stats:   &counters{},
		logger:  logger,
	}
}

// Ping tests the connection
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.do(func() error {
		return r.client.Ping(ctx).Err()
	})
}

// Get returns the raw value stored under key or ErrKeyNotFound.
func (r *RedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.do(func() error {
		var err error
		value, err = r.client.Get(ctx, key).Bytes()
		return err
	})

	switch {
	case errors.Is(err, redis.Nil):
		r.stats.miss()
		return nil, ErrKeyNotFound
	case err != nil:
		r.stats.miss()
		r.logger.Error("Redis GET failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	r.stats.hit()
	return value, nil
}

// Set stores value under key. A zero ttl keeps the key forever.
func (r *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.do(func() error {
		return r.client.Set(ctx, key, value, ttl).Err()
	})
	if err != nil {
		r.logger.Error("Redis SET failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Delete removes keys
func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	err := r.do(func() error {
		return r.client.Del(ctx, keys...).Err()
	})
	if err != nil {
		r.logger.Error("Redis DEL failed", zap.Strings("keys", keys), zap.Error(err))
	}
	return err
}

// Exists reports how many of keys are present
func (r *RedisClient) Exists(ctx context.Context, keys ...string) (int64, error) {
	var n int64
	err := r.do(func() error {
		var err error
		n, err = r.client.Exists(ctx, keys...).Result()
		return err
	})
	if err != nil {
		r.logger.Error("Redis EXISTS failed", zap.Strings("keys", keys), zap.Error(err))
		return 0, err
	}
	return n, nil
}

// Stats returns a snapshot of the command counters
func (r *RedisClient) Stats() Stats {
	r.stats.mu.Lock()
	defer r.stats.mu.Unlock()

	return r.stats.Stats
}

// Close closes the underlying connection pool
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// do runs fn behind the circuit breaker. redis.Nil is a successful round trip.
func (r *RedisClient) do(fn func() error) error {
	if !r.breaker.Allow() {
		return ErrCircuitOpen
	}

	start := time.Now()
	err := fn()
	r.stats.record(err, time.Since(start))

	if err != nil && !errors.Is(err, redis.Nil) {
		r.breaker.RecordFailure()
		return err
	}

	r.breaker.RecordSuccess()
	return err
}

func (s *counters) record(err error, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.TotalCommands++
	if err != nil && !errors.Is(err, redis.Nil) {
		s.FailedCommands++
	}

	// exponential moving average, alpha = 0.1
	if s.TotalCommands == 1 {
		s.AvgResponseTime = d
		return
	}
	s.AvgResponseTime = time.Duration(float64(s.AvgResponseTime)*0.9 + float64(d)*0.1)
}

func (s *counters) hit() {
	s.mu.Lock()
	s.Hits++
	s.mu.Unlock()
}

func (s *counters) miss() {
	s.mu.Lock()
	s.Misses++
	s.mu.Unlock()
}

// HitRatio returns hits / (hits + misses)
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

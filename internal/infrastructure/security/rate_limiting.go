package security

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nutrimate/v1/internal/infrastructure/config"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client key. Buckets that have
// been idle for longer than the cleanup interval are dropped.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	idle     time.Duration
	clients  map[string]*clientLimiter
	mu       sync.Mutex
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

// NewRateLimiter creates a limiter allowing RequestsPerMin per client with
// BurstSize headroom.
func NewRateLimiter(cfg config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	perMin := cfg.RequestsPerMin
	if perMin <= 0 {
		perMin = 120
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = 1
	}
	idle := cfg.CleanupInterval
	if idle <= 0 {
		idle = 5 * time.Minute
	}

	return &RateLimiter{
		limit:   rate.Limit(float64(perMin) / 60),
		burst:   burst,
		idle:    idle,
		clients: make(map[string]*clientLimiter),
		now:     time.Now,
		stop:    make(chan struct{}),
		logger:  logger,
	}
}

// Allow consumes one token from key's bucket
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	now := rl.now()
	c.lastSeen = now
	rl.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// Limit returns the configured requests per minute
func (rl *RateLimiter) Limit() int {
	return int(float64(rl.limit) * 60)
}

// Start runs the idle bucket sweeper until Stop is called
func (rl *RateLimiter) Start() {
	go func() {
		ticker := time.NewTicker(rl.idle)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := rl.evictIdle(); n > 0 {
					rl.logger.Debug("Evicted idle rate limit buckets", zap.Int("count", n))
				}
			case <-rl.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweeper
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) evictIdle() int {
	cutoff := rl.now().Add(-rl.idle)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	evicted := 0
	for key, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
			evicted++
		}
	}
	return evicted
}

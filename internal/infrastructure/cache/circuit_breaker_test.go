package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreaker(t *testing.T) {
	t.Run("opens after max failures", func(t *testing.T) {
		cb := NewCircuitBreaker(3, time.Minute)

		cb.RecordFailure()
		cb.RecordFailure()
		assert.True(t, cb.Allow())
		assert.Equal(t, CircuitClosed, cb.State())

		cb.RecordFailure()
		assert.Equal(t, CircuitOpen, cb.State())
		assert.False(t, cb.Allow())
	})

	t.Run("half-opens after timeout", func(t *testing.T) {
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		cb := NewCircuitBreaker(1, 30*time.Second)
		cb.now = func() time.Time { return now }

		cb.RecordFailure()
		assert.False(t, cb.Allow())

		now = now.Add(31 * time.Second)
		assert.True(t, cb.Allow())
		assert.Equal(t, CircuitHalfOpen, cb.State())

		cb.RecordSuccess()
		assert.Equal(t, CircuitClosed, cb.State())
	})

	t.Run("failed probe reopens", func(t *testing.T) {
		now := time.Now()
		cb := NewCircuitBreaker(5, time.Second)
		cb.now = func() time.Time { return now }

		for i := 0; i < 5; i++ {
			cb.RecordFailure()
		}
		now = now.Add(2 * time.Second)
		assert.True(t, cb.Allow())

		cb.RecordFailure()
		assert.Equal(t, CircuitOpen, cb.State())
		assert.False(t, cb.Allow())
	})
}

func TestStatsHitRatio(t *testing.T) {
	assert.Equal(t, 0.0, Stats{}.HitRatio())
	assert.InDelta(t, 0.75, Stats{Hits: 3, Misses: 1}.HitRatio(), 1e-9)
}

package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_NilIsUnlimited(t *testing.T) {
	var c *Controller

	require.NoError(t, c.Acquire(context.Background()))
	c.Release() // must not panic
}

func TestController_ZeroConfigIsUnlimited(t *testing.T) {
	c := NewController(Config{})

	for i := 0; i < 100; i++ {
		require.NoError(t, c.Acquire(context.Background()))
	}
	for i := 0; i < 100; i++ {
		c.Release()
	}
}

func TestController_ConcurrencyCap(t *testing.T) {
	c := NewController(Config{MaxConcurrentQueries: 1})

	require.NoError(t, c.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := c.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	c.Release()
	require.NoError(t, c.Acquire(context.Background()))
	c.Release()
}

func TestController_RateLimit(t *testing.T) {
	c := NewController(Config{QueriesPerSec: 1, Burst: 1})

	// The burst token admits the first query immediately.
	require.NoError(t, c.Acquire(context.Background()))
	c.Release()

	// The second token is a second away; a short deadline trips first.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := c.Acquire(ctx)
	assert.Error(t, err)
}

func TestController_ReleasesSlotOnRateFailure(t *testing.T) {
	c := NewController(Config{MaxConcurrentQueries: 1, QueriesPerSec: 1, Burst: 1})

	require.NoError(t, c.Acquire(context.Background()))
	c.Release()

	// Rate token exhausted: acquisition fails, but the concurrency slot
	// must be handed back.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.Error(t, c.Acquire(ctx))

	// The slot is free again, so only the rate limiter can block us now.
	ctx2, cancel2 := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel2()
	assert.NoError(t, c.Acquire(ctx2))
	c.Release()
}

package resource

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds admission limits for calls to the external vector retriever.
type Config struct {
	// MaxConcurrentQueries caps in-flight retriever calls.
	// If 0, concurrency is unlimited.
	MaxConcurrentQueries int64

	// QueriesPerSec limits the retriever call rate.
	// If 0, the rate is unlimited.
	QueriesPerSec float64

	// Burst is the rate limiter burst size. If 0 and QueriesPerSec is set,
	// it defaults to 1.
	Burst int
}

// Controller throttles access to the external vector retriever. A nil
// *Controller is valid and enforces nothing, so callers never branch on
// whether throttling is configured.
type Controller struct {
	querySem *semaphore.Weighted // nil if unlimited
	limiter  *rate.Limiter       // nil if unlimited
}

// NewController creates a new admission controller.
func NewController(cfg Config) *Controller {
	c := &Controller{}

	if cfg.MaxConcurrentQueries > 0 {
		c.querySem = semaphore.NewWeighted(cfg.MaxConcurrentQueries)
	}

	if cfg.QueriesPerSec > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.QueriesPerSec), burst)
	}

	return c
}

// Acquire blocks until a concurrency slot and a rate token are available, or
// ctx is canceled. Every successful Acquire must be paired with Release.
func (c *Controller) Acquire(ctx context.Context) error {
	if c == nil {
		return nil
	}

	if c.querySem != nil {
		if err := c.querySem.Acquire(ctx, 1); err != nil {
			return err
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if c.querySem != nil {
				c.querySem.Release(1)
			}
			return err
		}
	}

	return nil
}

// Release returns the concurrency slot taken by Acquire.
func (c *Controller) Release() {
	if c == nil {
		return
	}
	if c.querySem != nil {
		c.querySem.Release(1)
	}
}

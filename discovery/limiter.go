package discovery

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// TokenBucket is a blocking rate limiter keyed to a provider quota of
// `requests` per `window`. Wait blocks until a token is available or the
// context is done, so loop timing is decoupled from the quota.
type TokenBucket struct {
	mu           sync.Mutex
	capacity     float64
	tokens       float64
	refillPerSec float64
	last         time.Time
}

// NewTokenBucket creates a limiter allowing `requests` requests per
// `window`. The bucket starts full, so an initial burst up to the quota is
// allowed.
func NewTokenBucket(requests int, window time.Duration) *TokenBucket {
	if requests < 1 {
		requests = 1
	}
	if window <= 0 {
		window = time.Second
	}
	return &TokenBucket{
		capacity:     float64(requests),
		tokens:       float64(requests),
		refillPerSec: float64(requests) / window.Seconds(),
		last:         time.Now(),
	}
}

// Wait blocks until a token is available, then consumes it. It returns the
// context's error if the context is done first.
func (b *TokenBucket) Wait(ctx context.Context) error {
	for {
		b.mu.Lock()
		b.refill()
		if b.tokens >= 1 {
			b.tokens--
			b.mu.Unlock()
			return nil
		}
		needed := (1 - b.tokens) / b.refillPerSec
		b.mu.Unlock()

		wait := time.Duration(needed * float64(time.Second))
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return fmt.Errorf("rate limit wait cancelled: %w", ctx.Err())
		}
	}
}

// Allow reports whether a token is immediately available, consuming one if
// so.
func (b *TokenBucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refill()
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

func (b *TokenBucket) refill() {
	now := time.Now()
	elapsed := now.Sub(b.last).Seconds()
	b.last = now
	b.tokens += elapsed * b.refillPerSec
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
}

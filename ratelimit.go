package translio

import (
	"context"
	"sync"
	"time"
)

// RateLimitConfig configures provider request pacing.
type RateLimitConfig struct {
	RequestsPerMinute int // steady-state budget (default 60)
	BurstSize         int // bucket capacity (default: RequestsPerMinute)
}

// RateLimiter is a token bucket. Tokens accrue continuously at the
// steady-state rate; a full bucket allows a burst up to capacity.
type RateLimiter struct {
	mu       sync.Mutex
	level    float64
	capacity float64
	perSec   float64
	last     time.Time
}

// NewRateLimiter creates a limiter with a full bucket.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	perMinute := float64(cfg.RequestsPerMinute)
	if perMinute <= 0 {
		perMinute = 60
	}
	capacity := float64(cfg.BurstSize)
	if capacity <= 0 {
		capacity = perMinute
	}
	return &RateLimiter{
		level:    capacity,
		capacity: capacity,
		perSec:   perMinute / 60.0,
		last:     time.Now(),
	}
}

// topUp credits tokens for elapsed time. Caller holds mu.
func (r *RateLimiter) topUp() {
	now := time.Now()
	r.level += now.Sub(r.last).Seconds() * r.perSec
	r.last = now
	if r.level > r.capacity {
		r.level = r.capacity
	}
}

// TryAcquire takes one token if available, without blocking.
func (r *RateLimiter) TryAcquire() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topUp()
	if r.level < 1 {
		return false
	}
	r.level--
	return true
}

// Wait blocks until a token is taken or ctx is cancelled. Between attempts
// it sleeps one token interval rather than spinning.
func (r *RateLimiter) Wait(ctx context.Context) error {
	interval := time.Duration(float64(time.Second) / r.perSec)
	for {
		if r.TryAcquire() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// Available reports the current token level.
func (r *RateLimiter) Available() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topUp()
	return r.level
}

// RateLimitedProvider paces calls to an underlying provider.
type RateLimitedProvider struct {
	provider TranslationProvider
	limiter  *RateLimiter
}

// NewRateLimitedProvider wraps provider with a token bucket built from cfg.
func NewRateLimitedProvider(provider TranslationProvider, cfg RateLimitConfig) *RateLimitedProvider {
	return &RateLimitedProvider{provider: provider, limiter: NewRateLimiter(cfg)}
}

// Translate waits for a token, then delegates. Cancellation while waiting is
// reported as a non-retryable ProviderError so callers stop cleanly.
func (p *RateLimitedProvider) Translate(ctx context.Context, req BatchRequest) (map[string]string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{
			Message:   "rate limit wait cancelled",
			Cause:     err,
			Retryable: false,
		}
	}
	return p.provider.Translate(ctx, req)
}

// Limiter exposes the bucket for inspection.
func (p *RateLimitedProvider) Limiter() *RateLimiter {
	return p.limiter
}

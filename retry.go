package translio

import (
	"context"
	"errors"
	"time"
)

// RetryConfig bounds the retry loop around provider calls.
type RetryConfig struct {
	MaxRetries int           // attempts after the first call
	BaseDelay  time.Duration // first backoff step
	MaxDelay   time.Duration // backoff ceiling
}

// DefaultRetryConfig returns the stock 3-attempt exponential backoff.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// RetryFunc produces a value or a (possibly retryable) error.
type RetryFunc[T any] func() (T, error)

// WithRetry runs fn with exponential backoff, doubling the delay each attempt
// up to cfg.MaxDelay. A non-retryable error returns immediately; ctx
// cancellation wins over both the call and the backoff sleep.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		if !IsRetryable(err) {
			return zero, err
		}
		lastErr = err

		if attempt == cfg.MaxRetries {
			break
		}
		delay := cfg.BaseDelay << attempt
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	return zero, lastErr
}

// IsRetryable reports whether err carries a retryable ProviderError anywhere
// in its chain. Everything else, including cancellation, is terminal.
func IsRetryable(err error) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}
	return false
}

// RetryableProvider wraps a TranslationProvider with retry logic. Retrying is
// the provider client's responsibility; the engine itself never retries.
type RetryableProvider struct {
	provider TranslationProvider
	config   RetryConfig
}

// NewRetryableProvider wraps provider with the given retry policy.
func NewRetryableProvider(provider TranslationProvider, cfg RetryConfig) *RetryableProvider {
	return &RetryableProvider{provider: provider, config: cfg}
}

// Translate retries the wrapped provider per the configured policy.
func (p *RetryableProvider) Translate(ctx context.Context, req BatchRequest) (map[string]string, error) {
	return WithRetry(ctx, p.config, func() (map[string]string, error) {
		return p.provider.Translate(ctx, req)
	})
}

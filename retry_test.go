package translio

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  10 * time.Millisecond,
		MaxDelay:   100 * time.Millisecond,
	}
}

func TestWithRetry(t *testing.T) {
	tests := []struct {
		name      string
		failures  int  // calls that error before one succeeds
		retryable bool // whether those errors are retryable
		maxRetry  int
		wantCalls int
		wantErr   bool
	}{
		{"first call succeeds", 0, false, 3, 1, false},
		{"succeeds on third call", 2, true, 3, 3, false},
		{"non-retryable stops immediately", 5, false, 3, 1, true},
		{"budget exhausted", 5, true, 2, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fastRetryConfig()
			cfg.MaxRetries = tt.maxRetry

			calls := 0
			result, err := WithRetry(context.Background(), cfg, func() (string, error) {
				calls++
				if calls <= tt.failures {
					return "", &ProviderError{Message: "provider hiccup", Retryable: tt.retryable}
				}
				return "done", nil
			})

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
			} else {
				if err != nil {
					t.Fatalf("WithRetry failed: %v", err)
				}
				if result != "done" {
					t.Errorf("expected 'done', got %q", result)
				}
			}
			if calls != tt.wantCalls {
				t.Errorf("expected %d calls, got %d", tt.wantCalls, calls)
			}
		})
	}
}

func TestWithRetryContextCanceled(t *testing.T) {
	cfg := RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := WithRetry(ctx, cfg, func() (string, error) {
		return "", &ProviderError{Message: "rate limited", Retryable: true}
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"retryable provider error", &ProviderError{Retryable: true}, true},
		{"non-retryable provider error", &ProviderError{Retryable: false}, false},
		{"generic error", errors.New("some error"), false},
		{"context canceled", context.Canceled, false},
		{"context deadline", context.DeadlineExceeded, false},
		{"wrapped retryable error", &StorageError{Op: "x", Cause: &ProviderError{Retryable: true}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.MaxRetries != 3 || cfg.BaseDelay != 1*time.Second || cfg.MaxDelay != 30*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

type flakyProvider struct {
	failCount int
	callCount int
}

func (p *flakyProvider) Translate(ctx context.Context, req BatchRequest) (map[string]string, error) {
	p.callCount++
	if p.callCount <= p.failCount {
		return nil, &ProviderError{Message: "temporary failure", Retryable: true}
	}
	out := make(map[string]string)
	for _, item := range req.Items {
		out[item.ID] = "translated"
	}
	return out, nil
}

func TestRetryableProviderRecovers(t *testing.T) {
	inner := &flakyProvider{failCount: 2}
	provider := NewRetryableProvider(inner, fastRetryConfig())

	result, err := provider.Translate(context.Background(), BatchRequest{
		LanguageCode: "es_ES",
		Items:        []BatchRequestItem{{ID: "post:1:title", Text: "hello"}},
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if result["post:1:title"] != "translated" {
		t.Errorf("unexpected result: %v", result)
	}
	if inner.callCount != 3 {
		t.Errorf("expected 3 calls, got %d", inner.callCount)
	}
}

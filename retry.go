package ppap

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// RetryConfig configures retry behavior for failed sends.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts.
	MaxRetries int
	// BaseDelay is the initial delay between retry attempts.
	BaseDelay time.Duration
	// MaxDelay is the maximum delay between retry attempts.
	MaxDelay time.Duration
	// Multiplier is the factor by which the delay increases after each attempt.
	Multiplier float64
	// Jitter is the randomization factor (0.0 to 1.0) added to delays.
	Jitter float64
	// RetryableOn determines if a failure status should trigger a retry.
	// Network failures are always retryable.
	RetryableOn func(statusCode int) bool
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
		Jitter:     0.2,
		RetryableOn: func(statusCode int) bool {
			switch statusCode {
			case 408, 429, 500, 502, 503, 504:
				return true
			default:
				return false
			}
		},
	}
}

// shouldRetry determines if a failed send should be retried.
func (r *RetryConfig) shouldRetry(attempt int, err error) bool {
	if attempt >= r.MaxRetries {
		return false
	}
	var tErr *TransportError
	if !errors.As(err, &tErr) {
		return false
	}
	if tErr.Err != nil {
		return !errors.Is(tErr.Err, context.Canceled) && !errors.Is(tErr.Err, context.DeadlineExceeded)
	}
	return r.RetryableOn != nil && r.RetryableOn(tErr.StatusCode)
}

// Delay calculates the delay before the next retry attempt with optional jitter.
func (r *RetryConfig) Delay(attempt int) time.Duration {
	delay := float64(r.BaseDelay) * math.Pow(r.Multiplier, float64(attempt))
	if r.MaxDelay > 0 && delay > float64(r.MaxDelay) {
		delay = float64(r.MaxDelay)
	}

	if r.Jitter > 0 {
		jitterAmount := delay * r.Jitter
		delay = delay - jitterAmount + (rand.Float64() * 2 * jitterAmount)
	}

	return time.Duration(delay)
}

// wait waits for the appropriate delay before retrying.
func (r *RetryConfig) wait(ctx context.Context, attempt int) error {
	timer := time.NewTimer(r.Delay(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryTransport wraps a Transport and retries transient failures. The
// Orchestrator never retries on its own; wrap its transport to opt in.
type RetryTransport struct {
	next Transport
	cfg  *RetryConfig
}

var _ Transport = (*RetryTransport)(nil)

// NewRetryTransport wraps next. A nil cfg uses DefaultRetryConfig.
func NewRetryTransport(next Transport, cfg *RetryConfig) *RetryTransport {
	if cfg == nil {
		cfg = DefaultRetryConfig()
	}
	return &RetryTransport{next: next, cfg: cfg}
}

// SendMessage sends msg, retrying transient failures.
func (t *RetryTransport) SendMessage(ctx context.Context, msg EmailMessage) error {
	return t.do(ctx, func() error { return t.next.SendMessage(ctx, msg) })
}

// SendMessageWithAttachment sends msg with its attachment, retrying
// transient failures.
func (t *RetryTransport) SendMessageWithAttachment(ctx context.Context, msg EmailMessage) error {
	return t.do(ctx, func() error { return t.next.SendMessageWithAttachment(ctx, msg) })
}

func (t *RetryTransport) do(ctx context.Context, send func() error) error {
	for attempt := 0; ; attempt++ {
		err := send()
		if err == nil || !t.cfg.shouldRetry(attempt, err) {
			return err
		}
		if waitErr := t.cfg.wait(ctx, attempt); waitErr != nil {
			return err
		}
	}
}

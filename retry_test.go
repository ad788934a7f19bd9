package ppap

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

// flakyTransport fails the first n sends with err.
type flakyTransport struct {
	failures int32
	err      error
	calls    atomic.Int32
}

func (f *flakyTransport) send() error {
	if f.calls.Add(1) <= f.failures {
		return f.err
	}
	return nil
}

func (f *flakyTransport) SendMessage(context.Context, EmailMessage) error { return f.send() }

func (f *flakyTransport) SendMessageWithAttachment(context.Context, EmailMessage) error {
	return f.send()
}

func fastRetry(max int) *RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.MaxRetries = max
	cfg.BaseDelay = time.Millisecond
	cfg.MaxDelay = 5 * time.Millisecond
	cfg.Jitter = 0
	return cfg
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		if !cfg.RetryableOn(code) {
			t.Errorf("RetryableOn(%d) = false", code)
		}
	}
	for _, code := range []int{400, 401, 403, 404} {
		if cfg.RetryableOn(code) {
			t.Errorf("RetryableOn(%d) = true", code)
		}
	}
}

func TestRetryConfig_Delay(t *testing.T) {
	cfg := &RetryConfig{BaseDelay: time.Second, MaxDelay: 5 * time.Second, Multiplier: 2}
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 5 * time.Second},
	}
	for _, tt := range tests {
		if got := cfg.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestRetryConfig_DelayJitter(t *testing.T) {
	cfg := &RetryConfig{BaseDelay: time.Second, MaxDelay: time.Minute, Multiplier: 2, Jitter: 0.2}
	for i := 0; i < 50; i++ {
		d := cfg.Delay(0)
		if d < 800*time.Millisecond || d > 1200*time.Millisecond {
			t.Fatalf("Delay(0) = %v, outside jitter bounds", d)
		}
	}
}

func TestRetryTransport_RetriesServerErrors(t *testing.T) {
	next := &flakyTransport{failures: 2, err: &TransportError{Transport: "rest", StatusCode: http.StatusServiceUnavailable}}
	tr := NewRetryTransport(next, fastRetry(3))

	if err := tr.SendMessage(context.Background(), EmailMessage{To: "a@example.com"}); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if got := next.calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestRetryTransport_RetriesNetworkErrors(t *testing.T) {
	next := &flakyTransport{failures: 1, err: &TransportError{Transport: "smtp", Err: errors.New("connection reset")}}
	tr := NewRetryTransport(next, fastRetry(3))

	if err := tr.SendMessageWithAttachment(context.Background(), EmailMessage{To: "a@example.com"}); err != nil {
		t.Fatalf("SendMessageWithAttachment() error = %v", err)
	}
	if got := next.calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestRetryTransport_GivesUp(t *testing.T) {
	next := &flakyTransport{failures: 10, err: &TransportError{Transport: "rest", StatusCode: 500}}
	tr := NewRetryTransport(next, fastRetry(2))

	err := tr.SendMessage(context.Background(), EmailMessage{To: "a@example.com"})
	if !errors.Is(err, ErrServerError) {
		t.Errorf("SendMessage() error = %v, want ErrServerError", err)
	}
	if got := next.calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestRetryTransport_NoRetryOnClientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unauthorized", &TransportError{Transport: "rest", StatusCode: 401}},
		{"bad request", &TransportError{Transport: "rest", StatusCode: 400}},
		{"misuse", ErrAttachmentRequired},
		{"io", &IOError{Op: "read", Err: errors.New("boom")}},
		{"cancelled", &TransportError{Transport: "rest", Err: context.Canceled}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &flakyTransport{failures: 10, err: tt.err}
			tr := NewRetryTransport(next, fastRetry(3))

			if err := tr.SendMessage(context.Background(), EmailMessage{To: "a@example.com"}); err == nil {
				t.Fatal("SendMessage() expected error")
			}
			if got := next.calls.Load(); got != 1 {
				t.Errorf("calls = %d, want 1", got)
			}
		})
	}
}

func TestRetryTransport_ContextCancelledDuringWait(t *testing.T) {
	next := &flakyTransport{failures: 10, err: &TransportError{Transport: "rest", StatusCode: 500}}
	cfg := fastRetry(5)
	cfg.BaseDelay = time.Hour
	cfg.MaxDelay = time.Hour
	tr := NewRetryTransport(next, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := tr.SendMessage(ctx, EmailMessage{To: "a@example.com"})
	if !errors.Is(err, ErrServerError) {
		t.Errorf("SendMessage() error = %v, want last send error", err)
	}
	if got := next.calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestNewRetryTransport_DefaultConfig(t *testing.T) {
	tr := NewRetryTransport(&flakyTransport{}, nil)
	if tr.cfg == nil || tr.cfg.MaxRetries != 3 {
		t.Errorf("cfg = %+v", tr.cfg)
	}
}

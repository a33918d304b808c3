package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2,
	}
}

func TestRetry_Attempts(t *testing.T) {
	ok := MockResponse{Content: json.RawMessage(`{"ok":true}`)}
	down := MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
	invalid := MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}}
	truncated := MockResponse{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{`)}}
	limited := MockResponse{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}

	tests := []struct {
		name      string
		queue     []MockResponse
		wantCalls int
		wantErr   bool
	}{
		{"first attempt succeeds", []MockResponse{ok}, 1, false},
		{"transient then success", []MockResponse{down, ok}, 2, false},
		{"all attempts fail", []MockResponse{down, down, down, ok}, 3, true},
		{"truncation not retried", []MockResponse{truncated, ok}, 1, true},
		{"invalid retried once", []MockResponse{invalid, invalid, ok}, 2, true},
		{"invalid then transient", []MockResponse{invalid, down, ok}, 3, false},
		{"rate limit honors retry-after", []MockResponse{limited, ok}, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.queue...)
			resp, err := WithRetry(mock, fastRetry(), 0, nil).Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && string(resp.Content) != `{"ok":true}` {
				t.Errorf("content = %s", resp.Content)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_CanceledContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, fastRetry(), 0, nil).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("calls = %d, want 0", mock.CallCount())
	}
}

func TestRetry_Identity(t *testing.T) {
	p := WithRetry(NewMockProvider(), RetryConfig{}, 0, nil)
	if p.ModelID() != "mock" || p.Name() != ProviderMock {
		t.Fatalf("identity = %s/%s", p.Name(), p.ModelID())
	}
}

func TestRetry_Backoff(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}}
	within := func(d, want time.Duration) bool {
		return d >= want*8/10 && d <= want*12/10
	}

	if d := r.backoff(1, errors.New("x")); !within(d, 100*time.Millisecond) {
		t.Errorf("attempt 1 wait = %v", d)
	}
	if d := r.backoff(2, errors.New("x")); !within(d, 200*time.Millisecond) {
		t.Errorf("attempt 2 wait = %v", d)
	}
	if d := r.backoff(5, errors.New("x")); !within(d, 300*time.Millisecond) {
		t.Errorf("wait not capped: %v", d)
	}
	if d := r.backoff(1, &ErrRateLimit{RetryAfter: 7 * time.Second}); d != 7*time.Second {
		t.Errorf("retry-after ignored: %v", d)
	}
}

// stallProvider blocks until its context expires.
type stallProvider struct{ calls int }

func (s *stallProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	s.calls++
	<-ctx.Done()
	return nil, ctx.Err()
}

func (s *stallProvider) ModelID() string { return "stall" }
func (s *stallProvider) Name() string    { return "stall" }

func TestRetry_TimeoutBoundsCall(t *testing.T) {
	stall := &stallProvider{}
	start := time.Now()
	_, err := WithRetry(stall, fastRetry(), 20*time.Millisecond, nil).Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if stall.calls != 1 {
		t.Errorf("calls = %d, want 1", stall.calls)
	}
	if time.Since(start) > time.Second {
		t.Error("timeout not applied")
	}
}

package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// RetryProvider retries transient failures with capped exponential backoff
// and ±20% jitter. An invalid response is retried once; truncation and
// context errors are returned immediately.
type RetryProvider struct {
	inner   Provider
	config  RetryConfig
	timeout time.Duration
	logger  *zap.Logger
}

// WithRetry wraps a Provider. A positive timeout bounds the whole call,
// backoff included.
func WithRetry(p Provider, cfg RetryConfig, timeout time.Duration, logger *zap.Logger) Provider {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetryProvider{inner: p, config: cfg, timeout: timeout, logger: logger.Named("llm")}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var err error
	invalidSeen := false
	for attempt := 1; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		var invalid *ErrInvalidResponse
		isInvalid := errors.As(err, &invalid)
		if !retryable(err) || (isInvalid && invalidSeen) || attempt >= r.config.MaxAttempts {
			return nil, err
		}
		invalidSeen = invalidSeen || isInvalid

		wait := r.backoff(attempt, err)
		r.logger.Debug("retrying LLM request",
			zap.String("provider", r.inner.Name()),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func (r *RetryProvider) Name() string { return r.inner.Name() }

// retryable reports whether another attempt could succeed. Rate limits,
// outages, invalid output and unclassified transport errors qualify.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var truncated *ErrMaxTokensExceeded
	return !errors.As(err, &truncated)
}

// backoff returns the wait after the given 1-based attempt. A rate limit
// with RetryAfter overrides the schedule.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait)
	for range attempt - 1 {
		wait *= r.config.Multiplier
	}
	wait = min(wait, float64(r.config.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(max(wait, 0))
}

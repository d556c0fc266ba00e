// Package retry wraps fallible external calls with bounded
// exponential-backoff retry. Errors marked transient are retried; anything
// else propagates immediately so malformed input or auth failures never
// burn attempts.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrExhausted is returned (wrapping the last attempt's error) when every
// attempt failed with a transient error. Callers are expected to switch to
// their fallback path rather than surface it.
var ErrExhausted = errors.New("retry: attempts exhausted")

type transientError struct {
	err error
}

func (t *transientError) Error() string { return t.err.Error() }
func (t *transientError) Unwrap() error { return t.err }

// MarkTransient tags err as retryable (network/timeout/rate-limit class).
func MarkTransient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err was tagged with MarkTransient. Context
// deadline errors count as transient too, since a per-call timeout is the
// usual way a slow dependency shows up.
func IsTransient(err error) bool {
	var t *transientError
	if errors.As(err, &t) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// Config tunes a Policy. Zero values fall back to the defaults below.
type Config struct {
	MaxAttempts int           // default 3
	BaseDelay   time.Duration // default 200ms
	MaxDelay    time.Duration // per-wait cap, default 2s
	MaxElapsed  time.Duration // total wait ceiling, default 10s
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = 200 * time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 2 * time.Second
	}
	if c.MaxElapsed <= 0 {
		c.MaxElapsed = 10 * time.Second
	}
	return c
}

// Policy executes operations with the configured retry behaviour.
type Policy struct {
	cfg Config
	// sleep is swapped out in tests
	sleep func(ctx context.Context, d time.Duration) error
}

func NewPolicy(cfg Config) *Policy {
	return &Policy{cfg: cfg.withDefaults(), sleep: sleepCtx}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Execute runs op up to MaxAttempts times. Between attempts it waits
// BaseDelay*2^attempt with ±50% jitter, capped by MaxDelay and by the
// MaxElapsed total ceiling. Non-transient errors return immediately.
// Cancellation stops further attempts promptly.
func (p *Policy) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	deadline := time.Now().Add(p.cfg.MaxElapsed)
	var lastErr error

	for attempt := 0; attempt < p.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !IsTransient(lastErr) {
			return lastErr
		}
		if attempt == p.cfg.MaxAttempts-1 {
			break
		}

		wait := p.backoff(attempt)
		if time.Now().Add(wait).After(deadline) {
			break
		}
		if err := p.sleep(ctx, wait); err != nil {
			return err
		}
	}

	return fmt.Errorf("%w: %w", ErrExhausted, lastErr)
}

func (p *Policy) backoff(attempt int) time.Duration {
	d := p.cfg.BaseDelay << uint(attempt)
	if d > p.cfg.MaxDelay {
		d = p.cfg.MaxDelay
	}
	// jitter in [0.5, 1.5)
	jittered := time.Duration(float64(d) * (0.5 + rand.Float64()))
	if jittered > p.cfg.MaxDelay {
		jittered = p.cfg.MaxDelay
	}
	return jittered
}

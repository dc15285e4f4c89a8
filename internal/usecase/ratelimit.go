package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/steam-friend-adder/internal/core/port"
)

// rateLimitIdentifier keys the single shared window; the tool talks to one
// API with one key per process.
const rateLimitIdentifier = "steam-api"

// SlidingWindowLimiter enforces the Steam API call budget over a trailing
// time window. After a forced wait the whole window is dropped rather than
// re-pruned, so a burst right after the wait can briefly exceed the ceiling.
// That approximation is inherited behavior, kept intentionally.
type SlidingWindowLimiter struct {
	store  port.RateLimitStore
	window time.Duration
	limit  int
	logger *zap.Logger

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewSlidingWindowLimiter constructs a limiter over the given store.
func NewSlidingWindowLimiter(store port.RateLimitStore, window time.Duration, limit int, logger *zap.Logger) *SlidingWindowLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if limit <= 0 {
		limit = 30
	}
	return &SlidingWindowLimiter{
		store:  store,
		window: window,
		limit:  limit,
		logger: logger,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// Admit blocks until one more outbound call fits inside the window, then
// records the call. It must run immediately before every network call.
func (l *SlidingWindowLimiter) Admit(ctx context.Context) error {
	now := l.now()

	if err := l.store.TrimWindow(ctx, rateLimitIdentifier, l.window, now); err != nil {
		return fmt.Errorf("trim rate window: %w", err)
	}

	count, err := l.store.CountAttempts(ctx, rateLimitIdentifier, l.window, now)
	if err != nil {
		return fmt.Errorf("count rate window: %w", err)
	}

	if count >= l.limit {
		oldest, ok, err := l.store.OldestAttempt(ctx, rateLimitIdentifier, l.window, now)
		if err != nil {
			return fmt.Errorf("oldest attempt: %w", err)
		}
		if ok {
			if wait := l.window - now.Sub(oldest); wait > 0 {
				l.logger.Warn("rate limit reached, waiting",
					zap.Duration("wait", wait),
					zap.Int("limit", l.limit),
				)
				if err := l.sleep(ctx, wait); err != nil {
					return err
				}
				if err := l.store.Reset(ctx, rateLimitIdentifier); err != nil {
					return fmt.Errorf("reset rate window: %w", err)
				}
			}
		}
	}

	if err := l.store.RecordAttempt(ctx, rateLimitIdentifier, l.now()); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}

	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ port.Admitter = (*SlidingWindowLimiter)(nil)

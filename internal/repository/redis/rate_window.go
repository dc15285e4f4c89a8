package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arklim/steam-friend-adder/internal/core/port"
)

// WindowConfig defines key namespacing and expiry for the redis-backed window.
type WindowConfig struct {
	KeyPrefix string
	TTL       time.Duration
}

// RateWindow persists request instants in Redis sorted sets, letting repeated
// runs that share one API key also share the admission budget.
type RateWindow struct {
	client *redis.Client
	cfg    WindowConfig
}

// NewRateWindow constructs a store using the provided Redis client and config.
func NewRateWindow(client *redis.Client, cfg WindowConfig) *RateWindow {
	return &RateWindow{client: client, cfg: cfg}
}

// TrimWindow removes attempts older than the provided window relative to
// reference time.
func (r *RateWindow) TrimWindow(ctx context.Context, identifier string, window time.Duration, reference time.Time) error {
	if window <= 0 {
		return errors.New("window must be positive")
	}

	threshold := strconv.FormatInt(reference.Add(-window).UnixNano(), 10)
	if err := r.client.ZRemRangeByScore(ctx, r.key(identifier), "-inf", threshold).Err(); err != nil {
		return fmt.Errorf("redis zremrangebyscore: %w", err)
	}

	return nil
}

// CountAttempts returns how many attempts occurred within the window ending
// at reference time.
func (r *RateWindow) CountAttempts(ctx context.Context, identifier string, window time.Duration, reference time.Time) (int, error) {
	if window <= 0 {
		return 0, errors.New("window must be positive")
	}

	min := strconv.FormatInt(reference.Add(-window).UnixNano(), 10)
	max := strconv.FormatInt(reference.UnixNano(), 10)

	count, err := r.client.ZCount(ctx, r.key(identifier), min, max).Result()
	if err != nil {
		return 0, fmt.Errorf("redis zcount: %w", err)
	}

	return int(count), nil
}

// RecordAttempt stores the provided timestamp and refreshes the key TTL.
func (r *RateWindow) RecordAttempt(ctx context.Context, identifier string, at time.Time) error {
	key := r.key(identifier)
	member := redis.Z{Score: float64(at.UnixNano()), Member: at.UnixNano()}

	if err := r.client.ZAdd(ctx, key, member).Err(); err != nil {
		return fmt.Errorf("redis zadd: %w", err)
	}

	if r.cfg.TTL > 0 {
		if err := r.client.Expire(ctx, key, r.cfg.TTL).Err(); err != nil {
			return fmt.Errorf("redis expire: %w", err)
		}
	}

	return nil
}

// OldestAttempt returns the oldest attempt remaining inside the active window.
func (r *RateWindow) OldestAttempt(ctx context.Context, identifier string, window time.Duration, reference time.Time) (time.Time, bool, error) {
	if window <= 0 {
		return time.Time{}, false, errors.New("window must be positive")
	}

	values, err := r.client.ZRangeByScore(ctx, r.key(identifier), &redis.ZRangeBy{
		Min:   strconv.FormatInt(reference.Add(-window).UnixNano(), 10),
		Max:   strconv.FormatInt(reference.UnixNano(), 10),
		Count: 1,
	}).Result()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("redis zrangebyscore: %w", err)
	}

	if len(values) == 0 {
		return time.Time{}, false, nil
	}

	ts, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse timestamp: %w", err)
	}

	return time.Unix(0, ts), true, nil
}

// Reset drops every recorded attempt for the identifier.
func (r *RateWindow) Reset(ctx context.Context, identifier string) error {
	if err := r.client.Del(ctx, r.key(identifier)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *RateWindow) key(identifier string) string {
	if r.cfg.KeyPrefix == "" {
		return identifier
	}
	return fmt.Sprintf("%s:%s", r.cfg.KeyPrefix, identifier)
}

var _ port.RateLimitStore = (*RateWindow)(nil)

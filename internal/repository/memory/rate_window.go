package memory

import (
	"context"
	"errors"
	"time"

	"github.com/arklim/steam-friend-adder/internal/core/port"
)

// RateWindow keeps request instants in process memory, oldest first. The tool
// runs a single goroutine, so access is unsynchronized.
type RateWindow struct {
	attempts map[string][]time.Time
}

// NewRateWindow constructs an empty in-memory window store.
func NewRateWindow() *RateWindow {
	return &RateWindow{attempts: make(map[string][]time.Time)}
}

// TrimWindow removes attempts older than the provided window relative to
// reference time.
func (w *RateWindow) TrimWindow(_ context.Context, identifier string, window time.Duration, reference time.Time) error {
	if window <= 0 {
		return errors.New("window must be positive")
	}

	cutoff := reference.Add(-window)
	recorded := w.attempts[identifier]
	kept := recorded[:0]
	for _, at := range recorded {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	w.attempts[identifier] = kept

	return nil
}

// CountAttempts returns how many attempts occurred within the window ending
// at reference time.
func (w *RateWindow) CountAttempts(_ context.Context, identifier string, window time.Duration, reference time.Time) (int, error) {
	if window <= 0 {
		return 0, errors.New("window must be positive")
	}

	cutoff := reference.Add(-window)
	count := 0
	for _, at := range w.attempts[identifier] {
		if at.After(cutoff) && !at.After(reference) {
			count++
		}
	}

	return count, nil
}

// RecordAttempt stores the provided timestamp.
func (w *RateWindow) RecordAttempt(_ context.Context, identifier string, at time.Time) error {
	w.attempts[identifier] = append(w.attempts[identifier], at)
	return nil
}

// OldestAttempt returns the oldest attempt remaining inside the active window.
func (w *RateWindow) OldestAttempt(_ context.Context, identifier string, window time.Duration, reference time.Time) (time.Time, bool, error) {
	if window <= 0 {
		return time.Time{}, false, errors.New("window must be positive")
	}

	cutoff := reference.Add(-window)
	for _, at := range w.attempts[identifier] {
		if at.After(cutoff) && !at.After(reference) {
			return at, true, nil
		}
	}

	return time.Time{}, false, nil
}

// Reset drops every recorded attempt for the identifier.
func (w *RateWindow) Reset(_ context.Context, identifier string) error {
	delete(w.attempts, identifier)
	return nil
}

var _ port.RateLimitStore = (*RateWindow)(nil)

// Package ratelimit provides a blocking sliding-window request limiter.
package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Window allows at most limit acquisitions in any interval of length
// window. Callers over the limit block until the oldest acquisition ages
// out. The zero limit disables limiting.
type Window struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	stamps []time.Time // acquisitions still inside the window, oldest first

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a limiter for limit requests per window
func New(limit int, window time.Duration) *Window {
	return &Window{
		limit:  limit,
		window: window,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// PerMinute creates a limiter for limit requests per minute
func PerMinute(limit int) *Window {
	return New(limit, time.Minute)
}

// Limit returns the configured limit
func (w *Window) Limit() int {
	return w.limit
}

// Wait blocks until a request may be made and records it. It returns how
// long the caller was held back.
func (w *Window) Wait(ctx context.Context) (time.Duration, error) {
	var waited time.Duration

	for {
		w.mu.Lock()
		now := w.now()
		if w.limit <= 0 {
			w.mu.Unlock()
			return waited, nil
		}

		w.prune(now)
		if len(w.stamps) < w.limit {
			w.stamps = append(w.stamps, now)
			w.mu.Unlock()
			return waited, nil
		}

		delay := w.stamps[0].Add(w.window).Sub(now)
		w.mu.Unlock()

		slog.Info("Rate limit reached, waiting",
			"limit", w.limit,
			"window", w.window,
			"wait", delay.Round(100*time.Millisecond))

		if err := w.sleep(ctx, delay); err != nil {
			return waited, err
		}
		waited += delay
	}
}

// InFlight returns the number of acquisitions inside the current window
func (w *Window) InFlight() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prune(w.now())
	return len(w.stamps)
}

func (w *Window) prune(now time.Time) {
	i := 0
	for i < len(w.stamps) && now.Sub(w.stamps[i]) >= w.window {
		i++
	}
	if i > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[i:]...)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

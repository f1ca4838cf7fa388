package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Limiter bounds how often upstream API calls are issued.
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter is an in-process fixed-window limiter. A caller over the limit
// books a slot in the next window with room and sleeps until it starts.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int           // calls allowed per interval
	interval time.Duration // window length
	count    int           // slots booked in the window starting at windowStart
	// windowStart is in the future while callers are queued for a later window
	windowStart time.Time
	now         func() time.Time
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter creates a limiter allowing limit calls per interval.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:       limit,
		interval:    interval,
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// Wait blocks until a call is allowed or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limit <= 0 {
		return nil
	}

	rl.mu.Lock()
	now := rl.now()
	if now.Sub(rl.windowStart) >= rl.interval {
		rl.count = 0
		rl.windowStart = now
	}
	if rl.count >= rl.limit {
		rl.count = 0
		rl.windowStart = rl.windowStart.Add(rl.interval)
	}
	rl.count++
	start := rl.windowStart
	rl.mu.Unlock()

	if !start.After(now) {
		return nil
	}

	sleep := start.Sub(now)
	slog.Warn("upstream rate limit hit", "limit", rl.limit, "sleep", sleep)
	return sleepCtx(ctx, sleep)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
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

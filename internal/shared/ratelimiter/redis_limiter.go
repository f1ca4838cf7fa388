package ratelimiter

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window limiter shared by every process using the
// same Redis key prefix. Each window is one INCR counter that expires with it.
type RedisLimiter struct {
	rdb      redis.Cmdable
	prefix   string
	limit    int
	interval time.Duration
	now      func() time.Time
}

var _ Limiter = (*RedisLimiter)(nil)

func NewRedisLimiter(rdb redis.Cmdable, prefix string, limit int, interval time.Duration) *RedisLimiter {
	return &RedisLimiter{
		rdb:      rdb,
		prefix:   prefix,
		limit:    limit,
		interval: interval,
		now:      time.Now,
	}
}

// Wait increments the counter of the current window and, once the window is
// exhausted, sleeps until the next one starts.
func (l *RedisLimiter) Wait(ctx context.Context) error {
	if l.limit <= 0 {
		return nil
	}
	for {
		now := l.now()
		start := now.Truncate(l.interval)
		key := l.key(start)

		n, err := l.rdb.Incr(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("rate limiter incr: %w", err)
		}
		if n == 1 {
			if err := l.rdb.Expire(ctx, key, l.interval).Err(); err != nil {
				return fmt.Errorf("rate limiter expire: %w", err)
			}
		}
		if n <= int64(l.limit) {
			return nil
		}

		sleep := start.Add(l.interval).Sub(now)
		slog.Warn("shared upstream rate limit hit", "key", key, "count", n, "sleep", sleep)
		if err := sleepCtx(ctx, sleep); err != nil {
			return err
		}
	}
}

func (l *RedisLimiter) key(windowStart time.Time) string {
	return l.prefix + ":" + strconv.FormatInt(windowStart.Unix(), 10)
}

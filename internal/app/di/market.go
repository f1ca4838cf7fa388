// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"

	"crypto_dashboard/internal/platform/config"
	"crypto_dashboard/internal/platform/externalapi/coinbase"
	infrahttp "crypto_dashboard/internal/platform/http"
	"crypto_dashboard/internal/platform/http/handler"
	"crypto_dashboard/internal/platform/metrics"
	infraredis "crypto_dashboard/internal/platform/redis"
	"crypto_dashboard/internal/shared/ratelimiter"
)

// NewMarket creates a fully configured CoinbaseMarket with HTTP client.
func NewMarket(cfg *config.Config, limiter ratelimiter.Limiter, rec *metrics.Recorder) *coinbase.CoinbaseMarket {
	cbCfg := coinbase.Config{
		BaseURL:   cfg.Coinbase.BaseURL,
		UserAgent: cfg.Coinbase.UserAgent,
		Timeout:   cfg.Coinbase.Timeout,
	}
	return coinbase.NewCoinbaseMarket(cbCfg, infrahttp.NewHTTPClient(cbCfg.Timeout), limiter, rec)
}

// NewLimiter returns the Redis-backed limiter when Redis is enabled and
// reachable, and the in-process limiter otherwise. The returned closer is
// never nil.
func NewLimiter(ctx context.Context, cfg *config.Config, checks map[string]handler.Check) (ratelimiter.Limiter, func() error) {
	local := ratelimiter.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Interval)
	noop := func() error { return nil }

	if !cfg.Redis.Enabled {
		return local, noop
	}

	rdb, err := infraredis.NewRedisClient(ctx, infraredis.Config{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		slog.Warn("Redis unavailable, using in-process rate limiter", "error", err)
		return local, noop
	}

	checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	return ratelimiter.NewRedisLimiter(rdb, cfg.Redis.Prefix, cfg.RateLimit.Requests, cfg.RateLimit.Interval), rdb.Close
}

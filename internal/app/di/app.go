package di

import (
	"context"
	"errors"
	"log/slog"

	analyticshandler "crypto_dashboard/internal/feature/analytics/transport/handler"
	analyticsusecase "crypto_dashboard/internal/feature/analytics/usecase"
	candleshandler "crypto_dashboard/internal/feature/candles/transport/handler"
	candlesusecase "crypto_dashboard/internal/feature/candles/usecase"
	pairshandler "crypto_dashboard/internal/feature/pairs/transport/handler"
	pairsusecase "crypto_dashboard/internal/feature/pairs/usecase"
	"crypto_dashboard/internal/platform/config"
	"crypto_dashboard/internal/platform/http/handler"
	"crypto_dashboard/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// App is the assembled object graph shared by the server and the CLI.
type App struct {
	Config    *config.Config
	Metrics   *metrics.Recorder
	Candles   *candlesusecase.CandlesUsecase
	Pairs     *pairsusecase.PairsUsecase
	Dashboard *analyticsusecase.DashboardUsecase
	Checks    map[string]handler.Check

	closers []func() error
}

// NewApp wires repositories, usecases and metrics from cfg.
// Callers must Close the returned App.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg, Checks: map[string]handler.Check{}}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		a.Metrics = metrics.New(reg)
	}

	limiter, closeLimiter := NewLimiter(ctx, cfg, a.Checks)
	a.closers = append(a.closers, closeLimiter)

	pairRepo, closeDB, err := NewPairRepository(ctx, cfg, a.Checks)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.closers = append(a.closers, closeDB)

	market := NewMarket(cfg, limiter, a.Metrics)
	a.Candles = candlesusecase.NewCandlesUsecase(market)
	a.Pairs = pairsusecase.NewPairsUsecase(pairRepo)
	a.Dashboard = analyticsusecase.NewDashboardUsecase(a.Candles, a.Pairs, a.Metrics)

	return a, nil
}

// Handlers builds the HTTP handlers of every feature.
func (a *App) Handlers() Handlers {
	return Handlers{
		Candles:   candleshandler.NewCandlesHandler(a.Candles, a.Pairs),
		Dashboard: analyticshandler.NewDashboardHandler(a.Dashboard),
		Pairs:     pairshandler.NewPairHandler(a.Pairs),
		Health:    handler.NewHealth(a.Checks),
	}
}

// Handlers groups the transport layer for the router.
type Handlers struct {
	Candles   *candleshandler.CandlesHandler
	Dashboard *analyticshandler.DashboardHandler
	Pairs     *pairshandler.PairHandler
	Health    *handler.Health
}

// Close releases the database and Redis connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Error("failed to close resource", "error", err)
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

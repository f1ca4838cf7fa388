package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"crypto_dashboard/internal/feature/analytics/domain/entity"
	candle "crypto_dashboard/internal/feature/candles/domain/entity"
	"crypto_dashboard/internal/platform/metrics"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidQuery wraps validation failures of a Query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrUnknownPair is returned for pairs outside the offered list.
	ErrUnknownPair = errors.New("unknown trading pair")
)

// CandleSource supplies resampled candles and the current price.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider.
type CandleSource interface {
	GetCandles(ctx context.Context, pair string, days int, g candle.Granularity) (candle.Series, error)
	GetTicker(ctx context.Context, pair string) (float64, error)
}

// PairChecker reports whether a trading pair is offered.
type PairChecker interface {
	IsActive(ctx context.Context, code string) (bool, error)
}

// DashboardUsecase runs one pipeline pass per request.
type DashboardUsecase struct {
	candles  CandleSource
	pairs    PairChecker
	validate *validator.Validate
	metrics  *metrics.Recorder
	now      func() time.Time
}

// NewDashboardUsecase creates a DashboardUsecase. rec may be nil.
func NewDashboardUsecase(candles CandleSource, pairs PairChecker, rec *metrics.Recorder) *DashboardUsecase {
	return &DashboardUsecase{
		candles:  candles,
		pairs:    pairs,
		validate: validator.New(),
		metrics:  rec,
		now:      time.Now,
	}
}

// Build fetches candles, resamples them, derives indicators, fetches the
// ticker and computes the statistics and alert flag. Any fetch error fails
// the whole pass and no partial dashboard is returned.
func (u *DashboardUsecase) Build(ctx context.Context, q entity.Query) (_ *entity.Dashboard, err error) {
	if q.Sampling == "" {
		q.Sampling = candle.GranularityRaw
	}
	if q.Threshold == 0 {
		q.Threshold = entity.DefaultThreshold
	}

	alert := false
	defer func() { u.metrics.RecordPass(q.Pair, string(q.Sampling), err, alert) }()

	if err := u.validate.Struct(q); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	if err := u.checkPair(ctx, q.Pair); err != nil {
		return nil, err
	}

	series, err := u.candles.GetCandles(ctx, q.Pair, q.Days, q.Sampling)
	if err != nil {
		return nil, fmt.Errorf("fetch candles %s: %w", q.Pair, err)
	}
	rows := ComputeTrendIndicators(series)

	price, err := u.candles.GetTicker(ctx, q.Pair)
	if err != nil {
		return nil, fmt.Errorf("fetch ticker %s: %w", q.Pair, err)
	}

	closes := series.Closes()
	spread, z := ComputeSpreadAndZScore(closes)
	corr := ComputeRollingCorrelation(closes)

	latestZ, alert := Alert(z, q.Threshold)
	if alert {
		slog.Info("z-score alert triggered", "pair", q.Pair, "zscore", latestZ, "threshold", q.Threshold)
	}

	return &entity.Dashboard{
		Query:       q,
		Rows:        rows,
		Spread:      spread,
		ZScore:      z,
		Correlation: corr,
		Metrics:     entity.NewMetrics(price, rows),
		LatestZ:     latestZ,
		Alert:       alert,
		GeneratedAt: u.now().UTC(),
	}, nil
}

// Export runs a pass and returns its analytics table.
func (u *DashboardUsecase) Export(ctx context.Context, q entity.Query) (entity.ExportTable, error) {
	d, err := u.Build(ctx, q)
	if err != nil {
		return entity.ExportTable{}, err
	}
	return BuildExportTable(d.Rows, d.Spread, d.ZScore, d.Correlation), nil
}

func (u *DashboardUsecase) checkPair(ctx context.Context, pair string) error {
	if u.pairs == nil {
		return nil
	}
	ok, err := u.pairs.IsActive(ctx, pair)
	if err != nil {
		return fmt.Errorf("lookup pair %s: %w", pair, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPair, pair)
	}
	return nil
}

// Package usecase implements fetching and resampling of candle data.
package usecase

import (
	"context"
	"crypto_dashboard/internal/feature/candles/domain/entity"
	"fmt"
)

const (
	// DefaultDays is the lookback window used when none is given.
	DefaultDays = 1
	// MaxDays is the longest lookback offered by the control panel.
	MaxDays = 30
)

// MarketRepository abstracts the upstream exchange.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	GetTicker(ctx context.Context, productID string) (float64, error)
	GetHistoricalData(ctx context.Context, productID string, days int) (entity.Series, error)
}

// CandlesUsecase fetches hourly candles and resamples them.
type CandlesUsecase struct {
	market MarketRepository
}

// NewCandlesUsecase creates a CandlesUsecase backed by the given market.
func NewCandlesUsecase(market MarketRepository) *CandlesUsecase {
	return &CandlesUsecase{market: market}
}

// GetCandles returns the candles for pair over the trailing days window,
// resampled to g.
func (cu *CandlesUsecase) GetCandles(ctx context.Context, pair string, days int, g entity.Granularity) (entity.Series, error) {
	if days <= 0 || days > MaxDays {
		days = DefaultDays
	}
	if g == "" {
		g = entity.GranularityRaw
	}

	raw, err := cu.market.GetHistoricalData(ctx, pair, days)
	if err != nil {
		return nil, err
	}
	out, err := Resample(raw, g)
	if err != nil {
		return nil, fmt.Errorf("resample %s: %w", g, err)
	}
	return out, nil
}

// GetTicker returns the latest trade price for pair.
func (cu *CandlesUsecase) GetTicker(ctx context.Context, pair string) (float64, error) {
	return cu.market.GetTicker(ctx, pair)
}

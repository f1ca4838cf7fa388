// Package usecase computes trend indicators and rolling statistics from
// candle series and assembles them into dashboards and exports.
package usecase

import (
	"math"

	"crypto_dashboard/internal/feature/analytics/domain/entity"
	candle "crypto_dashboard/internal/feature/candles/domain/entity"
)

// emaAlpha is the smoothing factor of a span-20 EMA.
const emaAlpha = 2.0 / (entity.Window + 1)

// ComputeTrendIndicators returns s augmented with SMA20, EMA20 and Daily_Range.
//
// The EMA is seeded with the first defined close and is not bias adjusted.
// A NaN close carries the previous EMA forward.
func ComputeTrendIndicators(s candle.Series) []entity.TrendPoint {
	out := make([]entity.TrendPoint, len(s))

	var (
		sma    sumWindow
		ema    = math.NaN()
		seeded bool
	)
	for i, c := range s {
		sma.push(c.Close)

		switch {
		case math.IsNaN(c.Close):
		case !seeded:
			ema, seeded = c.Close, true
		default:
			ema = emaAlpha*c.Close + (1-emaAlpha)*ema
		}

		out[i] = entity.TrendPoint{
			Candle:     c,
			SMA20:      sma.mean(),
			EMA20:      ema,
			DailyRange: c.High - c.Low,
		}
	}
	return out
}

// ComputeSpreadAndZScore returns the first difference of closes and its
// trailing z-score. The z-score uses the sample (n-1) standard deviation of
// the last 20 spreads and is NaN until 20 spreads are defined or when that
// deviation is zero.
func ComputeSpreadAndZScore(closes []float64) (spread, z []float64) {
	spread = make([]float64, len(closes))
	z = make([]float64, len(closes))

	var w pairWindow
	for i := range closes {
		if i == 0 {
			spread[i] = math.NaN()
		} else {
			spread[i] = closes[i] - closes[i-1]
		}
		w.push(spread[i], spread[i])
		z[i] = w.zscore(spread[i])
	}
	return spread, z
}

// ComputeRollingCorrelation returns the trailing 20-observation Pearson
// correlation between closes and closes lagged by one. Positions without 20
// complete pairs, or with a constant side, are NaN.
func ComputeRollingCorrelation(closes []float64) []float64 {
	out := make([]float64, len(closes))

	var w pairWindow
	prev := math.NaN()
	for i, c := range closes {
		w.push(c, prev)
		out[i] = w.corr()
		prev = c
	}
	return out
}

// LatestDefined returns the last non-NaN value of xs.
func LatestDefined(xs []float64) (float64, bool) {
	for i := len(xs) - 1; i >= 0; i-- {
		if !math.IsNaN(xs[i]) {
			return xs[i], true
		}
	}
	return math.NaN(), false
}

// Alert reports whether the most recent defined z-score exceeds threshold
// in absolute value.
func Alert(z []float64, threshold float64) (latest float64, triggered bool) {
	latest, ok := LatestDefined(z)
	if !ok {
		return latest, false
	}
	return latest, math.Abs(latest) > threshold
}

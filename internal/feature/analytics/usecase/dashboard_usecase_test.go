package usecase_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"crypto_dashboard/internal/feature/analytics/domain/entity"
	"crypto_dashboard/internal/feature/analytics/usecase"
	candle "crypto_dashboard/internal/feature/candles/domain/entity"
	"crypto_dashboard/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream error")

// mockCandleSource is a mock implementation of CandleSource.
type mockCandleSource struct {
	GetCandlesFunc func(ctx context.Context, pair string, days int, g candle.Granularity) (candle.Series, error)
	GetTickerFunc  func(ctx context.Context, pair string) (float64, error)
	calls          []string
}

func (m *mockCandleSource) GetCandles(ctx context.Context, pair string, days int, g candle.Granularity) (candle.Series, error) {
	m.calls = append(m.calls, "candles")
	return m.GetCandlesFunc(ctx, pair, days, g)
}

func (m *mockCandleSource) GetTicker(ctx context.Context, pair string) (float64, error) {
	m.calls = append(m.calls, "ticker")
	return m.GetTickerFunc(ctx, pair)
}

// mockPairChecker is a mock implementation of PairChecker.
type mockPairChecker struct {
	active map[string]bool
	err    error
}

func (m *mockPairChecker) IsActive(_ context.Context, code string) (bool, error) {
	return m.active[code], m.err
}

func defaultPairs() *mockPairChecker {
	return &mockPairChecker{active: map[string]bool{"BTC-USD": true, "ETH-USD": true}}
}

func okSource(s candle.Series, price float64) *mockCandleSource {
	return &mockCandleSource{
		GetCandlesFunc: func(context.Context, string, int, candle.Granularity) (candle.Series, error) { return s, nil },
		GetTickerFunc:  func(context.Context, string) (float64, error) { return price, nil },
	}
}

func TestDashboardUsecase_Build_IncreasingCloses(t *testing.T) {
	t.Parallel()

	src := okSource(linearSeries(25, 100), 130)
	uc := usecase.NewDashboardUsecase(src, defaultPairs(), metrics.New(prometheus.NewRegistry()))

	d, err := uc.Build(context.Background(), entity.Query{Pair: "BTC-USD", Days: 1, Sampling: candle.GranularityRaw, Threshold: 2})
	require.NoError(t, err)

	assert.Equal(t, []string{"candles", "ticker"}, src.calls)
	require.Len(t, d.Rows, 25)
	assert.InDelta(t, 114.5, d.Rows[24].SMA20, 1e-9)
	assert.Equal(t, 1.0, d.Spread[24])
	assert.True(t, math.IsNaN(d.LatestZ))
	assert.False(t, d.Alert)

	// latest open is 123.5
	assert.Equal(t, 130.0, d.Metrics.Price)
	assert.InDelta(t, (130-123.5)/123.5*100, d.Metrics.DeltaPct, 1e-9)
	assert.Equal(t, 10.0, d.Metrics.Volume)
	assert.Equal(t, 2.0, d.Metrics.DailyRange)
	assert.False(t, d.GeneratedAt.IsZero())
}

func TestDashboardUsecase_Build_AlertOnSpike(t *testing.T) {
	t.Parallel()

	s := linearSeries(30, 100)
	for i := range s {
		s[i].Close = 100 + float64(i%2)*0.5
	}
	s[29].Close = s[28].Close + 25

	uc := usecase.NewDashboardUsecase(okSource(s, 125), defaultPairs(), nil)
	d, err := uc.Build(context.Background(), entity.Query{Pair: "ETH-USD", Days: 3, Sampling: candle.GranularityRaw, Threshold: 3})
	require.NoError(t, err)

	assert.True(t, d.Alert)
	assert.Greater(t, d.LatestZ, 3.0)
}

func TestDashboardUsecase_Build_Defaults(t *testing.T) {
	t.Parallel()

	src := okSource(nil, 1)
	src.GetCandlesFunc = func(_ context.Context, _ string, _ int, g candle.Granularity) (candle.Series, error) {
		assert.Equal(t, candle.GranularityRaw, g)
		return candle.Series{}, nil
	}

	uc := usecase.NewDashboardUsecase(src, defaultPairs(), nil)
	d, err := uc.Build(context.Background(), entity.Query{Pair: "BTC-USD", Days: 7})
	require.NoError(t, err)

	assert.Equal(t, entity.DefaultThreshold, d.Query.Threshold)
	assert.Empty(t, d.Rows)
	assert.True(t, math.IsNaN(d.Metrics.DeltaPct))
	assert.True(t, math.IsNaN(d.Metrics.Volume))
	assert.False(t, d.Alert)
}

func TestDashboardUsecase_Build_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     entity.Query
		pairs     *mockPairChecker
		source    *mockCandleSource
		wantErr   error
		wantCalls int
	}{
		{
			name:    "days outside the offered windows",
			query:   entity.Query{Pair: "BTC-USD", Days: 2},
			pairs:   defaultPairs(),
			source:  okSource(nil, 1),
			wantErr: usecase.ErrInvalidQuery,
		},
		{
			name:    "threshold above range",
			query:   entity.Query{Pair: "BTC-USD", Days: 1, Threshold: 3.5},
			pairs:   defaultPairs(),
			source:  okSource(nil, 1),
			wantErr: usecase.ErrInvalidQuery,
		},
		{
			name:    "unknown sampling",
			query:   entity.Query{Pair: "BTC-USD", Days: 1, Sampling: "15min"},
			pairs:   defaultPairs(),
			source:  okSource(nil, 1),
			wantErr: usecase.ErrInvalidQuery,
		},
		{
			name:    "unknown pair",
			query:   entity.Query{Pair: "DOGE-USD", Days: 1},
			pairs:   defaultPairs(),
			source:  okSource(nil, 1),
			wantErr: usecase.ErrUnknownPair,
		},
		{
			name:    "pair lookup failure",
			query:   entity.Query{Pair: "BTC-USD", Days: 1},
			pairs:   &mockPairChecker{err: errUpstream},
			source:  okSource(nil, 1),
			wantErr: errUpstream,
		},
		{
			name:  "candles fetch fails",
			query: entity.Query{Pair: "BTC-USD", Days: 1},
			pairs: defaultPairs(),
			source: &mockCandleSource{
				GetCandlesFunc: func(context.Context, string, int, candle.Granularity) (candle.Series, error) {
					return nil, errUpstream
				},
			},
			wantErr:   errUpstream,
			wantCalls: 1,
		},
		{
			name:  "ticker fetch fails after candles",
			query: entity.Query{Pair: "BTC-USD", Days: 1},
			pairs: defaultPairs(),
			source: &mockCandleSource{
				GetCandlesFunc: func(context.Context, string, int, candle.Granularity) (candle.Series, error) {
					return linearSeries(3, 1), nil
				},
				GetTickerFunc: func(context.Context, string) (float64, error) { return 0, errUpstream },
			},
			wantErr:   errUpstream,
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := usecase.NewDashboardUsecase(tt.source, tt.pairs, nil)
			d, err := uc.Build(context.Background(), tt.query)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, d, "no partial output on failure")
			assert.Len(t, tt.source.calls, tt.wantCalls)
		})
	}
}

func TestDashboardUsecase_Export(t *testing.T) {
	t.Parallel()

	uc := usecase.NewDashboardUsecase(okSource(linearSeries(21, 100), 121), nil, nil)
	table, err := uc.Export(context.Background(), entity.Query{Pair: "SOL-USD", Days: 30, Sampling: candle.GranularityFiveMinutes})
	require.NoError(t, err)

	require.Len(t, table.Rows, 21)
	assert.Equal(t, entity.ExportColumns, table.Columns)
	assert.InDelta(t, 1.0, table.Rows[20].Correlation, 1e-9)
}

package coinbase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"crypto_dashboard/internal/feature/candles/domain/entity"
	"crypto_dashboard/internal/feature/candles/usecase"
	"crypto_dashboard/internal/platform/externalapi/coinbase/dto"
	"crypto_dashboard/internal/platform/metrics"
	"crypto_dashboard/internal/shared/ratelimiter"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidDays is returned when the lookback window is shorter than one day.
	ErrInvalidDays = errors.New("coinbase: days must be >= 1")
	// ErrUpstream wraps every non-2xx response from the exchange.
	ErrUpstream = errors.New("coinbase: upstream error")
)

// CoinbaseMarket is the MarketRepository backed by the Coinbase Exchange REST API.
type CoinbaseMarket struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
	metrics *metrics.Recorder
	now     func() time.Time
}

var _ usecase.MarketRepository = (*CoinbaseMarket)(nil)

// NewCoinbaseMarket creates a client. limiter and rec may be nil.
func NewCoinbaseMarket(cfg Config, client *http.Client, limiter ratelimiter.Limiter, rec *metrics.Recorder) *CoinbaseMarket {
	return &CoinbaseMarket{
		cfg:     cfg,
		client:  client,
		limiter: limiter,
		metrics: rec,
		now:     time.Now,
	}
}

// GetTicker returns the latest trade price of productID.
func (m *CoinbaseMarket) GetTicker(ctx context.Context, productID string) (price float64, err error) {
	start := time.Now()
	defer func() { m.metrics.ObserveUpstream("ticker", time.Since(start), err) }()

	u := fmt.Sprintf("%s/products/%s/ticker", m.cfg.BaseURL, url.PathEscape(productID))

	var body dto.TickerResponse
	if err := m.get(ctx, u, &body); err != nil {
		return 0, err
	}

	d, err := decimal.NewFromString(body.Price)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", body.Price, err)
	}
	price = d.InexactFloat64()
	m.metrics.RecordLastPrice(productID, price)
	return price, nil
}

// GetHistoricalData returns hourly candles of productID for the trailing
// days window ending now, ascending by time. Gaps reported by the exchange
// are kept as missing rows.
func (m *CoinbaseMarket) GetHistoricalData(ctx context.Context, productID string, days int) (_ entity.Series, err error) {
	if days < 1 {
		return nil, ErrInvalidDays
	}
	start := time.Now()
	defer func() { m.metrics.ObserveUpstream("candles", time.Since(start), err) }()

	end := m.now().UTC()
	from := end.Add(-time.Duration(days) * 24 * time.Hour)

	q := url.Values{}
	q.Set("start", from.Format(time.RFC3339))
	q.Set("end", end.Format(time.RFC3339))
	q.Set("granularity", strconv.Itoa(candleGranularity))

	u := fmt.Sprintf("%s/products/%s/candles?%s", m.cfg.BaseURL, url.PathEscape(productID), q.Encode())

	var body dto.CandlesResponse
	if err := m.get(ctx, u, &body); err != nil {
		return nil, err
	}

	candles := make(entity.Series, 0, len(body))
	for i, row := range body {
		if len(row) < 6 {
			return nil, fmt.Errorf("candle row %d: expected 6 fields, got %d", i, len(row))
		}
		candles = append(candles, entity.Candle{
			Time:   time.Unix(int64(row[0]), 0).UTC(),
			Low:    row[1],
			High:   row[2],
			Open:   row[3],
			Close:  row[4],
			Volume: row[5],
		})
	}
	// the exchange returns newest first
	sort.SliceStable(candles, func(i, j int) bool { return candles[i].Time.Before(candles[j].Time) })
	return candles, nil
}

func (m *CoinbaseMarket) get(ctx context.Context, u string, out any) error {
	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", m.cfg.UserAgent)

	res, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var e dto.ErrorResponse
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		if json.Unmarshal(raw, &e) == nil && e.Message != "" {
			return fmt.Errorf("%w: http %d: %s", ErrUpstream, res.StatusCode, e.Message)
		}
		return fmt.Errorf("%w: http %d", ErrUpstream, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

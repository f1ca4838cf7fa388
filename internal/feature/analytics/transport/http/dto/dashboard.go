// Package dto defines the HTTP request and response shapes of the analytics feature.
package dto

import (
	"math"
	"time"

	"crypto_dashboard/internal/feature/analytics/domain/entity"
	candle "crypto_dashboard/internal/feature/candles/domain/entity"
)

// DashboardQuery holds the control panel selection.
// Sampling is checked by entity.ParseGranularity so display labels are accepted too.
type DashboardQuery struct {
	Pair      string  `form:"pair,default=BTC-USD" binding:"required"`
	Days      int     `form:"days,default=1" binding:"oneof=1 3 7 30"`
	Sampling  string  `form:"sampling,default=raw"`
	Threshold float64 `form:"threshold,default=2" binding:"gte=1,lte=3"`
}

// MetricsResponse holds the key metrics. Undefined values are null.
type MetricsResponse struct {
	Price      *float64 `json:"price"`
	DeltaPct   *float64 `json:"delta_pct"`
	Volume     *float64 `json:"volume"`
	DailyRange *float64 `json:"daily_range"`
}

// RowResponse is one augmented candle with its statistics.
type RowResponse struct {
	Time        string   `json:"time"`
	Open        float64  `json:"open"`
	High        float64  `json:"high"`
	Low         float64  `json:"low"`
	Close       float64  `json:"close"`
	Volume      float64  `json:"volume"`
	SMA20       *float64 `json:"sma20"`
	EMA20       *float64 `json:"ema20"`
	DailyRange  *float64 `json:"daily_range"`
	Spread      *float64 `json:"spread"`
	Zscore      *float64 `json:"zscore"`
	Correlation *float64 `json:"correlation"`
}

// DashboardResponse is the JSON form of one pipeline pass.
type DashboardResponse struct {
	Pair        string          `json:"pair"`
	Days        int             `json:"days"`
	Sampling    string          `json:"sampling"`
	Threshold   float64         `json:"threshold"`
	Metrics     MetricsResponse `json:"metrics"`
	LatestZ     *float64        `json:"latest_zscore"`
	Alert       bool            `json:"alert"`
	GeneratedAt string          `json:"generated_at"`
	Rows        []RowResponse   `json:"rows"`
}

// NewDashboardResponse converts a dashboard, mapping NaN to null.
func NewDashboardResponse(d *entity.Dashboard) DashboardResponse {
	table := make([]RowResponse, len(d.Rows))
	for i, r := range d.Rows {
		table[i] = RowResponse{
			Time:        r.Time.UTC().Format(time.RFC3339),
			Open:        r.Open,
			High:        r.High,
			Low:         r.Low,
			Close:       r.Close,
			Volume:      r.Volume,
			SMA20:       nullable(r.SMA20),
			EMA20:       nullable(r.EMA20),
			DailyRange:  nullable(r.DailyRange),
			Spread:      nullableAt(d.Spread, i),
			Zscore:      nullableAt(d.ZScore, i),
			Correlation: nullableAt(d.Correlation, i),
		}
	}

	return DashboardResponse{
		Pair:      d.Query.Pair,
		Days:      d.Query.Days,
		Sampling:  string(d.Query.Sampling),
		Threshold: d.Query.Threshold,
		Metrics: MetricsResponse{
			Price:      nullable(d.Metrics.Price),
			DeltaPct:   nullable(d.Metrics.DeltaPct),
			Volume:     nullable(d.Metrics.Volume),
			DailyRange: nullable(d.Metrics.DailyRange),
		},
		LatestZ:     nullable(d.LatestZ),
		Alert:       d.Alert,
		GeneratedAt: d.GeneratedAt.UTC().Format(time.RFC3339),
		Rows:        table,
	}
}

// TimeframeItem is one entry of the timeframe selector.
type TimeframeItem struct {
	Days  int    `json:"days"`
	Label string `json:"label"`
}

// SamplingItem is one entry of the sampling selector.
type SamplingItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ThresholdRange describes the z-score threshold slider.
type ThresholdRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// OptionsResponse lists the control panel choices accepted by the API.
type OptionsResponse struct {
	Timeframes []TimeframeItem `json:"timeframes"`
	Sampling   []SamplingItem  `json:"sampling"`
	Threshold  ThresholdRange  `json:"threshold"`
}

// NewOptionsResponse builds the control panel choices.
func NewOptionsResponse() OptionsResponse {
	out := OptionsResponse{
		Threshold: ThresholdRange{
			Min:     entity.MinThreshold,
			Max:     entity.MaxThreshold,
			Step:    0.1,
			Default: entity.DefaultThreshold,
		},
	}
	for _, tf := range candle.Timeframes() {
		out.Timeframes = append(out.Timeframes, TimeframeItem{Days: tf.Days, Label: tf.Label})
	}
	for _, g := range candle.Granularities() {
		out.Sampling = append(out.Sampling, SamplingItem{Value: string(g), Label: g.Label()})
	}
	return out
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func nullableAt(xs []float64, i int) *float64 {
	if i >= len(xs) {
		return nil
	}
	return nullable(xs[i])
}

// Package entity defines the analytics produced from a candle series.
package entity

import (
	"math"
	"time"

	candle "crypto_dashboard/internal/feature/candles/domain/entity"
)

// Window is the trailing observation count of every rolling statistic.
const Window = 20

// TrendPoint is a candle augmented with its trend indicators.
// SMA20 is NaN for the first Window-1 rows.
type TrendPoint struct {
	candle.Candle
	SMA20      float64
	EMA20      float64
	DailyRange float64
}

// Columns of the export table, in output order.
var ExportColumns = []string{
	"time", "low", "high", "open", "close", "volume",
	"SMA20", "EMA20", "Daily_Range",
	"Spread", "Zscore", "Correlation",
}

// ExportRow is one row of the analytics export.
type ExportRow struct {
	TrendPoint
	Spread      float64
	Zscore      float64
	Correlation float64
}

// ExportTable is the base series merged with its statistics by position.
type ExportTable struct {
	Columns []string
	Rows    []ExportRow
}

// Metrics are the scalar key metrics shown above the charts.
type Metrics struct {
	Price      float64 // current ticker price
	DeltaPct   float64 // percent change of Price against the latest row's open
	Volume     float64 // latest row's volume
	DailyRange float64 // latest row's high - low
}

// NewMetrics derives the key metrics from the ticker price and the latest row.
// Fields that depend on the latest row are NaN when rows is empty.
func NewMetrics(price float64, rows []TrendPoint) Metrics {
	m := Metrics{Price: price, DeltaPct: math.NaN(), Volume: math.NaN(), DailyRange: math.NaN()}
	if len(rows) == 0 {
		return m
	}
	latest := rows[len(rows)-1]
	if latest.Open != 0 {
		m.DeltaPct = (price - latest.Open) / latest.Open * 100
	}
	m.Volume = latest.Volume
	m.DailyRange = latest.DailyRange
	return m
}

// Query selects one dashboard pass.
type Query struct {
	Pair      string             `validate:"required"`
	Days      int                `validate:"oneof=1 3 7 30"`
	Sampling  candle.Granularity `validate:"oneof=raw 1min 5min"`
	Threshold float64            `validate:"gte=1,lte=3"`
}

const DefaultThreshold = 2.0

// Bounds of the alert threshold slider.
const (
	MinThreshold = 1.0
	MaxThreshold = 3.0
)

// Dashboard is the result of one pipeline pass.
type Dashboard struct {
	Query       Query
	Rows        []TrendPoint
	Spread      []float64
	ZScore      []float64
	Correlation []float64
	Metrics     Metrics
	LatestZ     float64 // most recent defined z-score, NaN if none
	Alert       bool
	GeneratedAt time.Time
}

// Package entity defines the domain models for the candles feature.
package entity

import (
	"errors"
	"strings"
	"time"
)

// Candle represents one OHLCV (Open, High, Low, Close, Volume) record
// for a trading pair over a fixed time bucket.
type Candle struct {
	Time   time.Time // Start of the bucket, UTC
	Open   float64   // Opening price
	High   float64   // Highest price during this period
	Low    float64   // Lowest price during this period
	Close  float64   // Closing price
	Volume float64   // Traded volume in base currency
}

// Series is an ordered sequence of candles, ascending by Time.
// Pipeline stages never modify a Series they receive; they return a new one.
type Series []Candle

// Clone returns a copy of s that shares no backing array with it.
func (s Series) Clone() Series {
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// Closes returns the closing prices in row order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Close
	}
	return out
}

// Granularity is the bucket width used for resampling.
type Granularity string

const (
	// GranularityRaw passes the series through unchanged.
	GranularityRaw Granularity = "raw"
	// GranularityOneMinute groups rows into 1-minute buckets.
	GranularityOneMinute Granularity = "1min"
	// GranularityFiveMinutes groups rows into 5-minute buckets.
	GranularityFiveMinutes Granularity = "5min"
)

// ErrUnknownGranularity is returned when a sampling mode cannot be parsed.
var ErrUnknownGranularity = errors.New("unknown granularity")

// Width returns the bucket width. Raw has no width and returns 0.
func (g Granularity) Width() time.Duration {
	switch g {
	case GranularityOneMinute:
		return time.Minute
	case GranularityFiveMinutes:
		return 5 * time.Minute
	default:
		return 0
	}
}

// Label returns the control-panel label for the sampling mode.
func (g Granularity) Label() string {
	switch g {
	case GranularityOneMinute:
		return "1 Min"
	case GranularityFiveMinutes:
		return "5 Min"
	default:
		return "Raw"
	}
}

// ParseGranularity accepts the API names (raw, 1min, 5min) as well as the
// dashboard labels (Raw, 1 Min, 5 Min). An empty string means raw.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "", "raw":
		return GranularityRaw, nil
	case "1min":
		return GranularityOneMinute, nil
	case "5min":
		return GranularityFiveMinutes, nil
	default:
		return "", ErrUnknownGranularity
	}
}

// Timeframe is a lookback window offered by the control panel.
type Timeframe struct {
	Label string
	Days  int
}

// Timeframes lists the offered lookback windows in display order.
func Timeframes() []Timeframe {
	return []Timeframe{
		{"Last 24 Hours", 1},
		{"Last 3 Days", 3},
		{"Last Week", 7},
		{"Last Month", 30},
	}
}

// Granularities lists the supported sampling modes in display order.
func Granularities() []Granularity {
	return []Granularity{GranularityRaw, GranularityOneMinute, GranularityFiveMinutes}
}

// Package dto defines data transfer objects for the candles HTTP API.
package dto

// CandleResponse is the response DTO for a single candle.
type CandleResponse struct {
	Time   string  `json:"time"`   // RFC 3339, UTC
	Open   float64 `json:"open"`   // opening price
	High   float64 `json:"high"`   // highest price
	Low    float64 `json:"low"`    // lowest price
	Close  float64 `json:"close"`  // closing price
	Volume float64 `json:"volume"` // traded volume
}

// CandlesQuery holds the query parameters accepted by the candles endpoint.
// Sampling is checked by entity.ParseGranularity so display labels are accepted too.
type CandlesQuery struct {
	Days     int    `form:"days,default=1" binding:"oneof=1 3 7 30"`
	Sampling string `form:"sampling,default=raw"`
}

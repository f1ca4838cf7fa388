// Package dto defines data transfer objects for the Coinbase Exchange API responses.
package dto

// TickerResponse represents the JSON response from /products/{pair}/ticker.
type TickerResponse struct {
	TradeID int64  `json:"trade_id"`
	Price   string `json:"price"`
	Size    string `json:"size"`
	Bid     string `json:"bid"`
	Ask     string `json:"ask"`
	Volume  string `json:"volume"`
	Time    string `json:"time"`
}

// CandlesResponse represents the JSON response from /products/{pair}/candles.
// Each row is [time, low, high, open, close, volume] with time in epoch seconds.
type CandlesResponse [][]float64

// ErrorResponse is the body Coinbase returns with non-2xx statuses.
type ErrorResponse struct {
	Message string `json:"message"`
}

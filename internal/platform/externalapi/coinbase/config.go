// Package coinbase provides a client for the Coinbase Exchange public market data API.
package coinbase

import "time"

// candleGranularity is the native candle width requested from the exchange, in seconds.
const candleGranularity = 3600

// Config holds configuration for the Coinbase API client.
type Config struct {
	BaseURL   string        // e.g. "https://api.exchange.coinbase.com"
	UserAgent string        // Coinbase rejects requests without one
	Timeout   time.Duration // HTTP request timeout
}

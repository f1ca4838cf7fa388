// Package entity defines the domain models for the pairs feature.
package entity

import "time"

// Pair is a trading pair offered by the control panel, e.g. BTC-USD.
type Pair struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:20;not null;uniqueIndex"`
	Name      string    `gorm:"size:100;not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	SortKey   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// DefaultPairs is the list the dashboard ships with.
var DefaultPairs = []Pair{
	{Code: "BTC-USD", Name: "Bitcoin", IsActive: true, SortKey: 1},
	{Code: "ETH-USD", Name: "Ethereum", IsActive: true, SortKey: 2},
	{Code: "SOL-USD", Name: "Solana", IsActive: true, SortKey: 3},
	{Code: "ADA-USD", Name: "Cardano", IsActive: true, SortKey: 4},
}

// Package dto defines data transfer objects for the pairs HTTP API.
package dto

// PairItem is one entry of the pair selector.
type PairItem struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

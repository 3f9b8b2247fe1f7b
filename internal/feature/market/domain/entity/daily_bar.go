// Package entity defines the domain models for the market feature.
package entity

// DailyBar is one ticker's OHLCV aggregate within a full-market
// grouped-daily snapshot.
type DailyBar struct {
	Ticker    string  `json:"ticker"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
	VWAP      float64 `json:"vwap,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

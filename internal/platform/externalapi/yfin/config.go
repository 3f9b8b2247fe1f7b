// Package yfin provides the client for the primary market-data provider
// (a Yahoo-Finance-style chart/quote/download API).
package yfin

import "time"

// Config holds configuration for the primary provider client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "https://query1.finance.yahoo.com")
	Timeout time.Duration // HTTP request timeout
}

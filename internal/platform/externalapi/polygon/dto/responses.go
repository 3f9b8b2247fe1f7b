// Package dto defines data transfer objects for the market provider's
// JSON responses.
package dto

// GroupedDailyResponse represents the grouped-daily aggregates response.
type GroupedDailyResponse struct {
	Status       string `json:"status"`
	QueryCount   int    `json:"queryCount"`
	ResultsCount int    `json:"resultsCount"`
	Results      []Agg  `json:"results"`
	Error        string `json:"error,omitempty"`
}

// Agg is one ticker's daily aggregate bar.
type Agg struct {
	Ticker    string  `json:"T"`
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    float64 `json:"v"`
	VWAP      float64 `json:"vw"`
	Timestamp int64   `json:"t"`
}

// TickersResponse represents one page of the reference tickers listing.
type TickersResponse struct {
	Status  string         `json:"status"`
	Count   int            `json:"count"`
	Results []TickerDetail `json:"results"`
	NextURL string         `json:"next_url,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// TickerDetail is one reference listing entry.
type TickerDetail struct {
	Ticker  string `json:"ticker"`
	Name    string `json:"name"`
	Market  string `json:"market"`
	Active  bool   `json:"active"`
	Locale  string `json:"locale"`
	Type    string `json:"type,omitempty"`
	Primary string `json:"primary_exchange,omitempty"`
}

// Package dto defines data transfer objects for the primary provider's
// JSON responses.
package dto

// ChartResponse represents the JSON response from the chart endpoint.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *APIError     `json:"error"`
	} `json:"chart"`
}

// ChartResult holds one symbol's sampled series.
type ChartResult struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Currency string `json:"currency"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []Quote `json:"quote"`
	} `json:"indicators"`
}

// Quote carries the parallel OHLCV arrays aligned with Timestamp.
type Quote struct {
	Open   []float64 `json:"open"`
	High   []float64 `json:"high"`
	Low    []float64 `json:"low"`
	Close  []float64 `json:"close"`
	Volume []int64   `json:"volume"`
}

// QuoteResponse represents the JSON response from the quote endpoint.
// Each result is kept as a raw object; the field set varies per quote type.
type QuoteResponse struct {
	QuoteResponse struct {
		Result []map[string]any `json:"result"`
		Error  *APIError        `json:"error"`
	} `json:"quoteResponse"`
}

// APIError is the provider's embedded error object.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

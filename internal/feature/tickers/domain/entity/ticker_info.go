// Package entity defines the domain models for the tickers feature.
package entity

// TickerInfo is the normalized record an info provider returns. Presence of
// the identity field is the validity gate: a payload without a recognizable
// symbol is treated as "no such ticker" rather than probed field by field.
type TickerInfo struct {
	Identity string         // canonical symbol as reported by the provider
	Fields   map[string]any // full provider payload, served as the result
}

// Valid reports whether the provider identified the ticker.
func (t TickerInfo) Valid() bool {
	return t.Identity != ""
}

// Package params validates and normalizes inbound request parameters.
// Validation happens once at the HTTP boundary; nothing past this package
// touches the cache or an upstream provider with unchecked input.
package params

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the only accepted calendar date format.
const DateLayout = "2006-01-02"

var (
	// ErrEmptySymbol is returned when the ticker symbol is missing or blank.
	ErrEmptySymbol = errors.New("symbol must not be empty")

	// ErrRangeOrder is returned when a date range is reversed or zero-width.
	ErrRangeOrder = errors.New("end date must be strictly after start date")

	// ErrFutureDate is returned when a market snapshot date lies in the future.
	ErrFutureDate = errors.New("date must not be in the future")
)

// Period is a fixed-window lookback token understood by the primary provider.
type Period string

const (
	Period1D  Period = "1d"
	Period5D  Period = "5d"
	Period1Mo Period = "1mo"
	Period3Mo Period = "3mo"
	Period6Mo Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
	Period5Y  Period = "5y"
	Period10Y Period = "10y"
	PeriodYTD Period = "ytd"
	PeriodMax Period = "max"
)

var validPeriods = map[Period]struct{}{
	Period1D: {}, Period5D: {}, Period1Mo: {}, Period3Mo: {}, Period6Mo: {},
	Period1Y: {}, Period2Y: {}, Period5Y: {}, Period10Y: {}, PeriodYTD: {},
	PeriodMax: {},
}

// NormalizeSymbol trims and upper-cases a ticker symbol so that "aapl" and
// "AAPL" share a single cache entry and upstream identity.
func NormalizeSymbol(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", ErrEmptySymbol
	}
	return s, nil
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParsePastDate parses a calendar date and rejects dates after today.
func ParsePastDate(s string, now time.Time) (time.Time, error) {
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if t.After(now.UTC().Truncate(24 * time.Hour)) {
		return time.Time{}, ErrFutureDate
	}
	return t, nil
}

// ParseRange parses a (start, end) date pair and enforces strict ordering.
func ParseRange(start, end string) (time.Time, time.Time, error) {
	s, err := ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !e.After(s) {
		return time.Time{}, time.Time{}, ErrRangeOrder
	}
	return s, e, nil
}

// ParsePeriod validates a lookback token against the fixed enumerated set.
// The error for an unknown token echoes the allowed values.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := validPeriods[p]; !ok {
		return "", fmt.Errorf("invalid period %q, allowed: %s", s, allowedPeriods())
	}
	return p, nil
}

// IntervalFor derives the sampling interval for a period download. Intraday
// lookbacks get hourly candles; anything longer gets daily candles.
func IntervalFor(p Period) string {
	if p == Period1D {
		return "1h"
	}
	return "1d"
}

func allowedPeriods() string {
	out := make([]string, 0, len(validPeriods))
	for p := range validPeriods {
		out = append(out, string(p))
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}

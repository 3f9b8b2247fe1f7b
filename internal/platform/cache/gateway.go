// Package cache implements the read-through cache gateway in front of the
// external market-data providers. The store is Redis; store unavailability
// degrades to pass-through (every read is a miss, every write a no-op) and
// is never surfaced to callers.
package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Stable key namespaces. These are part of the persisted key format shared
// across deployments; renaming one orphans every entry under it.
const (
	NamespaceTickerInfo = "stock_ticker_info"
	NamespacePeriods    = "stock_periods"
	NamespaceHistory    = "stock_history"
	NamespaceSymbols    = "stock_symbols"
	NamespaceMarket     = "market_daily"
)

// Gateway wraps a Redis client with the lookup/store contract used by every
// feature. A nil client is valid and means "run without a cache".
type Gateway struct {
	rdb *redis.Client
}

// NewGateway creates a cache gateway backed by the given Redis client.
func NewGateway(rdb *redis.Client) *Gateway {
	return &Gateway{rdb: rdb}
}

// Lookup reads a cached payload. Absence is not an error: a Redis miss, any
// Redis failure, and a nil client all report (nil, false).
func (g *Gateway) Lookup(ctx context.Context, key string) ([]byte, bool) {
	if g.rdb == nil {
		return nil, false
	}
	b, err := g.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			lookupErrors.Inc()
			slog.Warn("cache lookup failed, treating as miss", "key", key, "error", err)
		}
		misses.Inc()
		return nil, false
	}
	hits.Inc()
	return b, true
}

// Store writes a payload with the given TTL, best effort. A failed write is
// logged and swallowed; the freshly fetched value still goes to the caller.
// A non-positive TTL disables storage for this call.
func (g *Gateway) Store(ctx context.Context, key string, val []byte, ttl time.Duration) {
	if g.rdb == nil || ttl <= 0 {
		return
	}
	if err := g.rdb.Set(ctx, key, val, ttl).Err(); err != nil {
		storeErrors.Inc()
		slog.Warn("cache store failed, serving uncached", "key", key, "error", err)
	}
}

// Key builds a deterministic cache key: "ns:symbol" or "ns:symbol:extra...".
// Parts are escaped so a symbol can never smuggle a separator and collide
// with another endpoint kind or parameter combination.
func Key(namespace, symbol string, extra ...string) string {
	parts := make([]string, 0, 2+len(extra))
	parts = append(parts, namespace, safe(symbol))
	for _, e := range extra {
		parts = append(parts, safe(e))
	}
	return strings.Join(parts, ":")
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}

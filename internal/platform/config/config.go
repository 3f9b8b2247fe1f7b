// Package config loads the gateway configuration from environment variables.
// The configuration is read once at startup and passed explicitly to every
// component; nothing in the codebase reads the environment after this.
package config

import (
	"os"
	"strconv"
	"time"
)

// ProxyMode selects how outbound connection parameters are chosen.
type ProxyMode string

const (
	// ProxyOff disables outbound proxying entirely.
	ProxyOff ProxyMode = "off"
	// ProxyStatic uses a fixed proxy URL from configuration.
	ProxyStatic ProxyMode = "static"
	// ProxySession builds a fresh sticky-session proxy address per call.
	ProxySession ProxyMode = "session"
)

// Config holds every runtime option the gateway recognizes.
type Config struct {
	Port string

	// Cache store
	RedisAddr     string
	RedisPassword string

	// TTL tiers (seconds in the environment, durations here)
	TTLShort   time.Duration
	TTLDefault time.Duration
	TTLLong    time.Duration

	// Historical range queries are uncached by default; the key space is
	// unbounded, so opting in is a deliberate choice.
	CacheHistory bool

	// Outbound proxy
	ProxyMode        ProxyMode
	ProxyPrefix      string
	ProxySuffix      string
	ProxyStaticURL   string
	ProxyTokenLength int
	ProxyTokenAlnum  bool

	// Providers
	PrimaryBaseURL  string
	FallbackBaseURL string
	FallbackAPIKey  string
	MarketBaseURL   string
	MarketAPIKey    string
	UpstreamTimeout time.Duration

	// Inbound auth
	APIKey string
}

// Load reads the configuration from the environment, applying defaults
// for everything that is optional.
func Load() Config {
	return Config{
		Port: getenv("PORT", "8080"),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		TTLShort:   seconds("CACHE_TTL_SHORT", 300),
		TTLDefault: seconds("CACHE_TTL_DEFAULT", 3600),
		TTLLong:    seconds("CACHE_TTL_LONG", 21600),

		CacheHistory: boolean("CACHE_HISTORY", false),

		ProxyMode:        proxyMode(os.Getenv("PROXY_MODE")),
		ProxyPrefix:      os.Getenv("PROXY_PREFIX"),
		ProxySuffix:      os.Getenv("PROXY_SUFFIX"),
		ProxyStaticURL:   os.Getenv("PROXY_STATIC_URL"),
		ProxyTokenLength: integer("PROXY_TOKEN_LENGTH", 8),
		ProxyTokenAlnum:  boolean("PROXY_TOKEN_ALNUM", false),

		PrimaryBaseURL:  getenv("PRIMARY_BASE_URL", "https://query1.finance.yahoo.com"),
		FallbackBaseURL: getenv("FALLBACK_BASE_URL", "https://financialmodelingprep.com"),
		FallbackAPIKey:  os.Getenv("FALLBACK_API_KEY"),
		MarketBaseURL:   getenv("MARKET_BASE_URL", "https://api.polygon.io"),
		MarketAPIKey:    os.Getenv("MARKET_API_KEY"),
		UpstreamTimeout: seconds("UPSTREAM_TIMEOUT", 10),

		APIKey: os.Getenv("API_KEY"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func seconds(key string, fallback int) time.Duration {
	return time.Duration(integer(key, fallback)) * time.Second
}

func integer(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func boolean(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func proxyMode(v string) ProxyMode {
	switch ProxyMode(v) {
	case ProxyStatic, ProxySession:
		return ProxyMode(v)
	default:
		return ProxyOff
	}
}

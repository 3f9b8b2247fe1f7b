// Package di provides dependency injection factories for creating application components.
package di

import (
	"net/http"

	"stock_gateway/internal/platform/config"
	"stock_gateway/internal/platform/externalapi/fmp"
	"stock_gateway/internal/platform/externalapi/polygon"
	"stock_gateway/internal/platform/externalapi/yfin"
	infrahttp "stock_gateway/internal/platform/http"
	"stock_gateway/internal/platform/proxy"
)

// NewUpstreamHTTPClient creates the shared HTTP client for every upstream
// provider, with the proxy selector wired into the transport so each request
// picks its own outbound address.
func NewUpstreamHTTPClient(cfg config.Config) *http.Client {
	sel := proxy.NewSelector(cfg, 0)
	return infrahttp.NewHTTPClient(cfg.UpstreamTimeout, sel.ProxyFunc())
}

// NewPrimary creates the primary market-data provider client.
func NewPrimary(cfg config.Config, client *http.Client) *yfin.Client {
	return yfin.NewClient(yfin.Config{
		BaseURL: cfg.PrimaryBaseURL,
		Timeout: cfg.UpstreamTimeout,
	}, client)
}

// NewFallback creates the fallback profile provider client.
func NewFallback(cfg config.Config, client *http.Client) *fmp.Client {
	return fmp.NewClient(fmp.Config{
		BaseURL: cfg.FallbackBaseURL,
		APIKey:  cfg.FallbackAPIKey,
		Timeout: cfg.UpstreamTimeout,
	}, client)
}

// NewMarket creates the market-wide data provider client.
func NewMarket(cfg config.Config, client *http.Client) *polygon.Client {
	return polygon.NewClient(polygon.Config{
		BaseURL: cfg.MarketBaseURL,
		APIKey:  cfg.MarketAPIKey,
		Timeout: cfg.UpstreamTimeout,
	}, client)
}

// Package fmp provides the client for the secondary (fallback) provider,
// a company-profile API queried only when the primary fails to identify a
// ticker. Its differently shaped payload is reduced to the comparable
// subset of fields before being treated as the result.
package fmp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	tickerentity "stock_gateway/internal/feature/tickers/domain/entity"
	"stock_gateway/internal/platform/externalapi/upstream"
)

// ErrNotConfigured indicates no fallback credential is present; the caller
// should surface the primary failure instead of attempting a fallback.
var ErrNotConfigured = errors.New("fallback provider not configured")

// ErrNoIdentity indicates the profile API had no record for the symbol.
var ErrNoIdentity = upstream.ErrNoIdentity

// Config holds configuration for the fallback provider client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client はフォールバックプロバイダ（企業プロフィールAPI）のクライアントです。
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// Configured reports whether a fallback credential is present.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// profile is the subset of the provider's payload we compare against the
// primary's record shape.
type profile struct {
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"companyName"`
	Price       float64 `json:"price"`
	Exchange    string  `json:"exchange"`
	Industry    string  `json:"industry"`
	MktCap      float64 `json:"mktCap"`
	Description string  `json:"description"`
}

// Profile はフォールバックプロバイダからティッカー情報を取得し、
// 主要プロバイダと比較可能なフィールド部分集合へ縮約します。
func (c *Client) Profile(ctx context.Context, symbol string) (tickerentity.TickerInfo, error) {
	if !c.Configured() {
		return tickerentity.TickerInfo{}, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("apikey", c.cfg.APIKey)

	u := fmt.Sprintf("%s/api/v3/profile/%s?%s", c.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return tickerentity.TickerInfo{}, err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return tickerentity.TickerInfo{}, fmt.Errorf("fmp request failed: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 256))
		return tickerentity.TickerInfo{}, fmt.Errorf("fmp http %d: %s", res.StatusCode, raw)
	}

	var profiles []profile
	if err := json.NewDecoder(res.Body).Decode(&profiles); err != nil {
		return tickerentity.TickerInfo{}, err
	}
	if len(profiles) == 0 || profiles[0].Symbol == "" {
		return tickerentity.TickerInfo{}, ErrNoIdentity
	}

	p := profiles[0]
	return tickerentity.TickerInfo{
		Identity: p.Symbol,
		Fields: map[string]any{
			"symbol":      p.Symbol,
			"shortName":   p.CompanyName,
			"price":       p.Price,
			"exchange":    p.Exchange,
			"industry":    p.Industry,
			"marketCap":   p.MktCap,
			"description": p.Description,
		},
	}, nil
}

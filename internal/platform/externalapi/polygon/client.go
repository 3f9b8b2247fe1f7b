// Package polygon provides the client for the market-wide data provider
// (grouped-daily aggregates and the reference ticker listing).
package polygon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	marketentity "stock_gateway/internal/feature/market/domain/entity"
	symbolentity "stock_gateway/internal/feature/symbollist/domain/entity"
	"stock_gateway/internal/platform/externalapi/polygon/dto"
)

// maxTickerPages bounds the reference listing walk so a misbehaving
// next_url chain cannot loop forever.
const maxTickerPages = 20

// Config holds configuration for the market provider client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client はマーケット全体データプロバイダのAPIクライアントです。
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// GroupedDaily は指定日のマーケット全体のOHLCスナップショットを取得します。
func (c *Client) GroupedDaily(ctx context.Context, date string) ([]marketentity.DailyBar, error) {
	q := url.Values{}
	q.Set("adjusted", "true")
	q.Set("apiKey", c.cfg.APIKey)

	u := fmt.Sprintf("%s/v2/aggs/grouped/locale/us/market/stocks/%s?%s",
		c.cfg.BaseURL, url.PathEscape(date), q.Encode())

	var body dto.GroupedDailyResponse
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	if body.Status == "ERROR" {
		return nil, fmt.Errorf("polygon: %s", body.Error)
	}

	bars := make([]marketentity.DailyBar, 0, len(body.Results))
	for _, a := range body.Results {
		bars = append(bars, marketentity.DailyBar{
			Ticker:    a.Ticker,
			Open:      a.Open,
			High:      a.High,
			Low:       a.Low,
			Close:     a.Close,
			Volume:    a.Volume,
			VWAP:      a.VWAP,
			Timestamp: a.Timestamp,
		})
	}
	return bars, nil
}

// ListTickers はリファレンス一覧からアクティブな銘柄を取得します。
// ページングはnext_urlを辿り、上限ページ数で打ち切ります。
func (c *Client) ListTickers(ctx context.Context) ([]symbolentity.Symbol, error) {
	q := url.Values{}
	q.Set("market", "stocks")
	q.Set("active", "true")
	q.Set("limit", "1000")
	q.Set("apiKey", c.cfg.APIKey)

	u := fmt.Sprintf("%s/v3/reference/tickers?%s", c.cfg.BaseURL, q.Encode())

	var out []symbolentity.Symbol
	for page := 0; u != "" && page < maxTickerPages; page++ {
		var body dto.TickersResponse
		if err := c.getJSON(ctx, u, &body); err != nil {
			return nil, err
		}
		if body.Status == "ERROR" {
			return nil, fmt.Errorf("polygon: %s", body.Error)
		}
		for _, r := range body.Results {
			out = append(out, symbolentity.Symbol{
				Code:     r.Ticker,
				Name:     r.Name,
				Market:   r.Market,
				IsActive: r.Active,
			})
		}
		u = body.NextURL
		if u != "" {
			// next_urlにはAPIキーが含まれないため付け直す
			u = u + "&apiKey=" + url.QueryEscape(c.cfg.APIKey)
		}
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("polygon request failed: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 256))
		return fmt.Errorf("polygon http %d: %s", res.StatusCode, raw)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

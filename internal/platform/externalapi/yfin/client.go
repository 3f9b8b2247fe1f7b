package yfin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	candleentity "stock_gateway/internal/feature/candles/domain/entity"
	tickerentity "stock_gateway/internal/feature/tickers/domain/entity"
	"stock_gateway/internal/platform/externalapi/upstream"
	"stock_gateway/internal/platform/externalapi/yfin/dto"
	"stock_gateway/internal/platform/params"
)

// ErrNoIdentity indicates the provider returned a payload without a
// recognizable ticker identity. Not cached, surfaced as not-found.
var ErrNoIdentity = upstream.ErrNoIdentity

// Client は主要マーケットデータプロバイダのAPIクライアントです。
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// Info はティッカーの詳細情報を取得します。識別フィールド（symbol）の
// 有無を正当性の判定に使います。
func (c *Client) Info(ctx context.Context, symbol string) (tickerentity.TickerInfo, error) {
	q := url.Values{}
	q.Set("symbols", symbol)

	u := fmt.Sprintf("%s/v7/finance/quote?%s", c.cfg.BaseURL, q.Encode())

	var body dto.QuoteResponse
	if err := c.getJSON(ctx, u, &body); err != nil {
		return tickerentity.TickerInfo{}, err
	}
	if body.QuoteResponse.Error != nil {
		return tickerentity.TickerInfo{}, fmt.Errorf("yfin: %s", body.QuoteResponse.Error.Description)
	}
	if len(body.QuoteResponse.Result) == 0 {
		return tickerentity.TickerInfo{}, ErrNoIdentity
	}

	fields := body.QuoteResponse.Result[0]
	identity, _ := fields["symbol"].(string)
	info := tickerentity.TickerInfo{Identity: identity, Fields: fields}
	if !info.Valid() {
		return tickerentity.TickerInfo{}, ErrNoIdentity
	}
	return info, nil
}

// History は指定期間のOHLCデータを取得し、domain.Candleのスライスとして返します。
func (c *Client) History(ctx context.Context, symbol string, start, end time.Time) ([]candleentity.Candle, error) {
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(start.Unix(), 10))
	q.Set("period2", strconv.FormatInt(end.Unix(), 10))
	q.Set("interval", "1d")

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	var body dto.ChartResponse
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	if body.Chart.Error != nil {
		return nil, fmt.Errorf("yfin: %s", body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 {
		return nil, ErrNoIdentity
	}

	return toCandles(symbol, body.Chart.Result[0])
}

// Download は固定期間のOHLCデータをCSVとして取得します。CSV生成は
// プロバイダ側に委譲され、バイト列は加工せずそのまま返します。
func (c *Client) Download(ctx context.Context, symbol string, period params.Period, interval string) ([]byte, error) {
	q := url.Values{}
	q.Set("range", string(period))
	q.Set("interval", interval)
	q.Set("events", "history")

	u := fmt.Sprintf("%s/v7/finance/download/%s?%s", c.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yfin request failed: %w", err)
	}
	defer closeBody(res)

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNoIdentity
	}
	if res.StatusCode >= 400 {
		return nil, statusError(res.StatusCode, raw)
	}
	return raw, nil
}

// getJSON はGETリクエストを実行してJSONレスポンスをデコードします。
func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("yfin request failed: %w", err)
	}
	defer closeBody(res)

	if res.StatusCode == http.StatusNotFound {
		return ErrNoIdentity
	}
	if res.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return statusError(res.StatusCode, raw)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// toCandles は並列配列のチャート結果をドメインエンティティに変換します。
func toCandles(symbol string, r dto.ChartResult) ([]candleentity.Candle, error) {
	if len(r.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yfin: chart result has no quote data")
	}
	quote := r.Indicators.Quote[0]

	candles := make([]candleentity.Candle, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			break
		}
		candles = append(candles, candleentity.Candle{
			Symbol: symbol,
			Time:   time.Unix(ts, 0).UTC(),
			Open:   quote.Open[i],
			High:   quote.High[i],
			Low:    quote.Low[i],
			Close:  quote.Close[i],
			Volume: quote.Volume[i],
		})
	}
	return candles, nil
}

func statusError(code int, body []byte) error {
	snippet := string(body)
	if len(snippet) > 256 {
		snippet = snippet[:256]
	}
	return fmt.Errorf("yfin http %d: %s", code, snippet)
}

func closeBody(res *http.Response) {
	if err := res.Body.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err)
	}
}

package yfin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stock_gateway/internal/platform/params"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, srv.Client())
	return c, srv
}

// TestClient_Info_Success は正常系のティッカー情報取得を検証します。
func TestClient_Info_Success(t *testing.T) {
	t.Parallel()

	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v7/finance/quote") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("symbols"); got != "AAPL" {
			t.Errorf("expected symbols=AAPL, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"quoteResponse":{"result":[{"symbol":"AAPL","shortName":"Apple Inc.","regularMarketPrice":150.25}],"error":null}}`))
	})
	defer srv.Close()

	info, err := c.Info(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Identity != "AAPL" {
		t.Errorf("expected identity AAPL, got %q", info.Identity)
	}
	if info.Fields["shortName"] != "Apple Inc." {
		t.Errorf("unexpected fields %v", info.Fields)
	}
}

// TestClient_Info_NoIdentity は識別フィールド欠落時にErrNoIdentityを返すことを検証します。
func TestClient_Info_NoIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "empty result set", body: `{"quoteResponse":{"result":[],"error":null}}`},
		{name: "record without symbol", body: `{"quoteResponse":{"result":[{"shortName":"???"}],"error":null}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			defer srv.Close()

			_, err := c.Info(context.Background(), "NOPE")
			if !errors.Is(err, ErrNoIdentity) {
				t.Errorf("expected ErrNoIdentity, got %v", err)
			}
		})
	}
}

// TestClient_Info_HTTPError は非2xx応答がステータス付きエラーになることを検証します。
func TestClient_Info_HTTPError(t *testing.T) {
	t.Parallel()

	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})
	defer srv.Close()

	_, err := c.Info(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry upstream status, got %q", err.Error())
	}
}

// TestClient_History_Success はチャート応答のパースを検証します。
func TestClient_History_Success(t *testing.T) {
	t.Parallel()

	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v8/finance/chart/AAPL") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("period1") == "" || q.Get("period2") == "" {
			t.Error("expected period1/period2 query parameters")
		}
		_, _ = w.Write([]byte(`{"chart":{"result":[{"meta":{"symbol":"AAPL"},"timestamp":[1704153600,1704240000],"indicators":{"quote":[{"open":[185.0,186.1],"high":[186.5,187.0],"low":[184.2,185.5],"close":[186.0,186.8],"volume":[50000000,42000000]}]}}],"error":null}}`))
	})
	defer srv.Close()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	candles, err := c.History(context.Background(), "AAPL", start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("expected 2 candles, got %d", len(candles))
	}
	if candles[0].Open != 185.0 || candles[0].Volume != 50000000 {
		t.Errorf("unexpected first candle %+v", candles[0])
	}
	if candles[0].Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %q", candles[0].Symbol)
	}
}

// TestClient_History_UpstreamError はプロバイダ埋め込みエラーの伝播を検証します。
func TestClient_History_UpstreamError(t *testing.T) {
	t.Parallel()

	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	})
	defer srv.Close()

	_, err := c.History(context.Background(), "GONE", time.Now().Add(-48*time.Hour), time.Now())
	if err == nil || !strings.Contains(err.Error(), "delisted") {
		t.Errorf("expected upstream description in error, got %v", err)
	}
}

// TestClient_Download はCSVダウンロードとクエリ組み立てを検証します。
func TestClient_Download(t *testing.T) {
	t.Parallel()

	csv := "Date,Open,High,Low,Close,Adj Close,Volume\n2024-01-02,185.0,186.5,184.2,186.0,186.0,50000000\n"
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v7/finance/download/AAPL") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("range") != "1mo" || q.Get("interval") != "1d" {
			t.Errorf("unexpected query %v", q)
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(csv))
	})
	defer srv.Close()

	got, err := c.Download(context.Background(), "AAPL", params.Period1Mo, "1d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != csv {
		t.Errorf("CSV bytes must pass through unmodified")
	}
}

// TestClient_Download_NotFound は404がErrNoIdentityとなることを検証します。
func TestClient_Download_NotFound(t *testing.T) {
	t.Parallel()

	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	defer srv.Close()

	_, err := c.Download(context.Background(), "NOPE", params.Period1D, "1h")
	if !errors.Is(err, ErrNoIdentity) {
		t.Errorf("expected ErrNoIdentity, got %v", err)
	}
}

// TestClient_Timeout はタイムアウトがエラーとして報告されることを検証します。
func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := &http.Client{Timeout: 20 * time.Millisecond}
	c := NewClient(Config{BaseURL: srv.URL}, client)

	_, err := c.Info(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("expected timeout error, request must never hang")
	}
}

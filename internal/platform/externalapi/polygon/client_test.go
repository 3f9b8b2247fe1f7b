package polygon

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestClient_GroupedDaily はグループデイリー応答のパースを検証します。
func TestClient_GroupedDaily(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v2/aggs/grouped/locale/us/market/stocks/2024-03-15") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("apiKey") != "k" {
			t.Error("expected apiKey query parameter")
		}
		_, _ = w.Write([]byte(`{"status":"OK","queryCount":2,"resultsCount":2,"results":[{"T":"AAPL","o":185.0,"h":186.5,"l":184.2,"c":186.0,"v":50000000,"vw":185.7,"t":1710460800000},{"T":"MSFT","o":415.0,"h":417.2,"l":413.9,"c":416.4,"v":21000000,"vw":415.9,"t":1710460800000}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "k", Timeout: 5 * time.Second}, srv.Client())

	bars, err := c.GroupedDaily(context.Background(), "2024-03-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Ticker != "AAPL" || bars[0].Close != 186.0 {
		t.Errorf("unexpected first bar %+v", bars[0])
	}
}

// TestClient_GroupedDaily_Error は上流エラーステータスの伝播を検証します。
func TestClient_GroupedDaily_Error(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ERROR","error":"Unknown date format"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "k"}, srv.Client())
	_, err := c.GroupedDaily(context.Background(), "bogus")
	if err == nil || !strings.Contains(err.Error(), "Unknown date format") {
		t.Errorf("expected upstream error detail, got %v", err)
	}
}

// TestClient_ListTickers はページングを辿った銘柄一覧取得を検証します。
func TestClient_ListTickers(t *testing.T) {
	t.Parallel()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apiKey") != "k" {
			t.Error("expected apiKey on every page")
		}
		if r.URL.Query().Get("cursor") == "page2" {
			_, _ = w.Write([]byte(`{"status":"OK","count":1,"results":[{"ticker":"MSFT","name":"Microsoft Corp.","market":"stocks","active":true}]}`))
			return
		}
		_, _ = fmt.Fprintf(w, `{"status":"OK","count":1,"results":[{"ticker":"AAPL","name":"Apple Inc.","market":"stocks","active":true}],"next_url":"%s/v3/reference/tickers?cursor=page2"}`, srv.URL)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "k"}, srv.Client())
	symbols, err := c.ListTickers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(symbols) != 2 {
		t.Fatalf("expected 2 symbols across pages, got %d", len(symbols))
	}
	if symbols[0].Code != "AAPL" || symbols[1].Code != "MSFT" {
		t.Errorf("unexpected symbols %+v", symbols)
	}
}

// TestClient_ListTickers_HTTPError は非2xx応答のエラー化を検証します。
func TestClient_ListTickers_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "bad"}, srv.Client())
	_, err := c.ListTickers(context.Background())
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status in error, got %v", err)
	}
}

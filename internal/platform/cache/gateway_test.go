package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

// TestKey はキャッシュキーの決定的な構築を検証します。
func TestKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		namespace string
		symbol    string
		extra     []string
		want      string
	}{
		{
			name:      "simple lookup",
			namespace: NamespaceTickerInfo,
			symbol:    "AAPL",
			want:      "stock_ticker_info:AAPL",
		},
		{
			name:      "with discriminator",
			namespace: NamespacePeriods,
			symbol:    "AAPL",
			extra:     []string{"1mo"},
			want:      "stock_periods:AAPL:1mo",
		},
		{
			name:      "with date range",
			namespace: NamespaceHistory,
			symbol:    "MSFT",
			extra:     []string{"2024-01-01", "2024-02-01"},
			want:      "stock_history:MSFT:2024-01-01:2024-02-01",
		},
		{
			name:      "separator in symbol escaped",
			namespace: NamespaceTickerInfo,
			symbol:    "A:B C",
			want:      "stock_ticker_info:A_B_C",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Key(tt.namespace, tt.symbol, tt.extra...); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestKey_NoCollisionAcrossNamespaces は異なるエンドポイント種別の
// キーが衝突しないことを検証します。
func TestKey_NoCollisionAcrossNamespaces(t *testing.T) {
	t.Parallel()

	a := Key(NamespaceTickerInfo, "AAPL")
	b := Key(NamespacePeriods, "AAPL")
	c := Key(NamespacePeriods, "AAPL", "1mo")
	if a == b || b == c || a == c {
		t.Errorf("keys must be distinct: %q %q %q", a, b, c)
	}
}

// TestGateway_Lookup_Hit はキャッシュヒット時の読み出しを検証します。
func TestGateway_Lookup_Hit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("stock_ticker_info:AAPL").SetVal(`{"symbol":"AAPL"}`)

	g := NewGateway(rdb)
	val, ok := g.Lookup(context.Background(), "stock_ticker_info:AAPL")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(val) != `{"symbol":"AAPL"}` {
		t.Errorf("unexpected payload %q", val)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestGateway_Lookup_Miss はキー不在がミスとして扱われることを検証します。
func TestGateway_Lookup_Miss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("stock_ticker_info:TSLA").RedisNil()

	g := NewGateway(rdb)
	if _, ok := g.Lookup(context.Background(), "stock_ticker_info:TSLA"); ok {
		t.Error("expected cache miss")
	}
}

// TestGateway_Lookup_StoreError はストア障害がミスに縮退することを検証します。
func TestGateway_Lookup_StoreError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("stock_ticker_info:AAPL").SetErr(errors.New("connection refused"))

	g := NewGateway(rdb)
	if _, ok := g.Lookup(context.Background(), "stock_ticker_info:AAPL"); ok {
		t.Error("store error must degrade to a miss, never an error")
	}
}

// TestGateway_Lookup_NilClient はRedis未設定時に常にミスとなることを検証します。
func TestGateway_Lookup_NilClient(t *testing.T) {
	t.Parallel()

	g := NewGateway(nil)
	if _, ok := g.Lookup(context.Background(), "stock_ticker_info:AAPL"); ok {
		t.Error("nil client must report a miss")
	}
}

// TestGateway_Store は書き込みとTTLの指定を検証します。
func TestGateway_Store(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	payload := []byte(`{"symbol":"AAPL"}`)
	mock.ExpectSet("stock_ticker_info:AAPL", payload, 6*time.Hour).SetVal("OK")

	g := NewGateway(rdb)
	g.Store(context.Background(), "stock_ticker_info:AAPL", payload, 6*time.Hour)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestGateway_Store_BestEffort は書き込み失敗が呼び出し元に
// 伝播しないことを検証します。
func TestGateway_Store_BestEffort(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectSet("stock_periods:AAPL:1mo", []byte("csv"), time.Hour).SetErr(errors.New("oom"))

	g := NewGateway(rdb)
	// パニックもエラーも起きないこと
	g.Store(context.Background(), "stock_periods:AAPL:1mo", []byte("csv"), time.Hour)
}

// TestGateway_Store_ZeroTTL はTTLゼロ以下で書き込みが行われないことを検証します。
func TestGateway_Store_ZeroTTL(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	g := NewGateway(rdb)
	g.Store(context.Background(), "stock_history:AAPL", []byte("x"), 0)

	// Setが呼ばれていなければ期待は常に満たされる
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no write expected with zero TTL: %v", err)
	}
}

// TestGateway_RoundTrip は書き込んだ値がそのまま読み戻せることを検証します。
func TestGateway_RoundTrip(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	payload := []byte(`{"symbol":"AAPL","price":150.25}`)
	key := Key(NamespaceTickerInfo, "AAPL")

	mock.ExpectSet(key, payload, time.Hour).SetVal("OK")
	mock.ExpectGet(key).SetVal(string(payload))

	g := NewGateway(rdb)
	g.Store(context.Background(), key, payload, time.Hour)
	got, ok := g.Lookup(context.Background(), key)
	if !ok {
		t.Fatal("expected hit after store")
	}
	if string(got) != string(payload) {
		t.Errorf("round trip mismatch: %q vs %q", got, payload)
	}
}

// Package usecase はOHLCデータ取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"time"

	"stock_gateway/internal/feature/candles/domain/entity"
	"stock_gateway/internal/platform/cache"
	"stock_gateway/internal/platform/params"
)

// MarketDataProvider はOHLC履歴と期間ダウンロードの取得を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketDataProvider interface {
	History(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error)
	Download(ctx context.Context, symbol string, period params.Period, interval string) ([]byte, error)
}

// CacheGateway はリードスルーキャッシュの読み書き契約です。
type CacheGateway interface {
	Lookup(ctx context.Context, key string) ([]byte, bool)
	Store(ctx context.Context, key string, val []byte, ttl time.Duration)
}

// CandlesUsecase はOHLCデータ取得のユースケースを定義します。
type CandlesUsecase struct {
	provider MarketDataProvider
	cache    CacheGateway

	// historyTTLが0以下なら履歴範囲クエリはキャッシュしない（既定）。
	// 任意の日付範囲はキー空間が非有界になるため、有効化は設定による明示。
	historyTTL time.Duration
	periodTTL  time.Duration
}

// NewCandlesUsecase はCandlesUsecaseの新しいインスタンスを生成します。
func NewCandlesUsecase(provider MarketDataProvider, cg CacheGateway, historyTTL, periodTTL time.Duration) *CandlesUsecase {
	return &CandlesUsecase{
		provider:   provider,
		cache:      cg,
		historyTTL: historyTTL,
		periodTTL:  periodTTL,
	}
}

// GetHistory は指定範囲のOHLCデータを取得します。
func (u *CandlesUsecase) GetHistory(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, bool, error) {
	key := cache.Key(cache.NamespaceHistory, symbol,
		start.Format(params.DateLayout), end.Format(params.DateLayout))

	if u.historyTTL > 0 {
		if b, ok := u.cache.Lookup(ctx, key); ok {
			var out []entity.Candle
			if err := json.Unmarshal(b, &out); err == nil {
				return out, true, nil
			}
			slog.Warn("discarding corrupt cache entry", "key", key)
		}
	}

	candles, err := u.provider.History(ctx, symbol, start, end)
	if err != nil {
		return nil, false, err
	}

	if u.historyTTL > 0 {
		if b, err := json.Marshal(candles); err == nil {
			u.cache.Store(ctx, key, b, u.historyTTL)
		}
	}
	return candles, false, nil
}

// DownloadPeriod は固定期間のCSVダウンロードを取得し、base64文字列として
// 返します。CSVはストアのバイナリ安全性に依存しないよう、保存前に
// base64化され、レスポンスにも同じ形で載ります。
func (u *CandlesUsecase) DownloadPeriod(ctx context.Context, symbol string, period params.Period) (string, bool, error) {
	key := cache.Key(cache.NamespacePeriods, symbol, string(period))

	if b, ok := u.cache.Lookup(ctx, key); ok {
		return string(b), true, nil
	}

	// 期間に応じたサンプリング間隔の導出（1dのみ時間足）
	interval := params.IntervalFor(period)

	csv, err := u.provider.Download(ctx, symbol, period, interval)
	if err != nil {
		return "", false, err
	}

	encoded := base64.StdEncoding.EncodeToString(csv)
	u.cache.Store(ctx, key, []byte(encoded), u.periodTTL)
	return encoded, false, nil
}

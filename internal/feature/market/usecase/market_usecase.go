// Package usecase はマーケット全体スナップショット取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"stock_gateway/internal/feature/market/domain/entity"
	"stock_gateway/internal/platform/cache"
	"stock_gateway/internal/platform/memocache"
)

// MarketProvider はグループデイリー集計の取得を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketProvider interface {
	GroupedDaily(ctx context.Context, date string) ([]entity.DailyBar, error)
}

// MarketUsecase はマーケット全体スナップショット取得のユースケースを定義します。
// 上流の集計呼び出しは日付キーのインプロセスキャッシュでメモ化されます。
type MarketUsecase struct {
	provider MarketProvider
	memo     *memocache.Cache
}

// NewMarketUsecase はMarketUsecaseの新しいインスタンスを生成します。
func NewMarketUsecase(provider MarketProvider, memo *memocache.Cache) *MarketUsecase {
	return &MarketUsecase{provider: provider, memo: memo}
}

// GetGroupedDaily は指定日のマーケット全体OHLCスナップショットを取得します。
func (u *MarketUsecase) GetGroupedDaily(ctx context.Context, date string) ([]entity.DailyBar, bool, error) {
	key := cache.Key(cache.NamespaceMarket, date)

	if b, ok := u.memo.Get(key); ok {
		var out []entity.DailyBar
		if err := json.Unmarshal(b, &out); err == nil {
			return out, true, nil
		}
		slog.Warn("discarding corrupt memo entry", "key", key)
	}

	bars, err := u.provider.GroupedDaily(ctx, date)
	if err != nil {
		return nil, false, err
	}

	if b, err := json.Marshal(bars); err == nil {
		u.memo.Set(key, b)
	}
	return bars, false, nil
}

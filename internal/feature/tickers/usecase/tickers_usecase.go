// Package usecase はティッカー情報取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"stock_gateway/internal/feature/tickers/domain/entity"
	"stock_gateway/internal/platform/cache"
	"stock_gateway/internal/platform/externalapi/upstream"
)

// InfoProvider は主要プロバイダのティッカー情報取得を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type InfoProvider interface {
	Info(ctx context.Context, symbol string) (entity.TickerInfo, error)
}

// FallbackProvider は二次プロバイダ（企業プロフィールAPI）を抽象化します。
type FallbackProvider interface {
	Configured() bool
	Profile(ctx context.Context, symbol string) (entity.TickerInfo, error)
}

// CacheGateway はリードスルーキャッシュの読み書き契約です。
type CacheGateway interface {
	Lookup(ctx context.Context, key string) ([]byte, bool)
	Store(ctx context.Context, key string, val []byte, ttl time.Duration)
}

// Result is a ticker info payload plus its cache provenance.
type Result struct {
	Fields    map[string]any
	FromCache bool
}

// TickersUsecase はティッカー情報取得のユースケースを定義します。
type TickersUsecase struct {
	primary  InfoProvider
	fallback FallbackProvider
	cache    CacheGateway
	ttl      time.Duration
}

// NewTickersUsecase はTickersUsecaseの新しいインスタンスを生成します。
// ttlはティッカー情報のキャッシュ保持期間（長期ティア）です。
func NewTickersUsecase(primary InfoProvider, fallback FallbackProvider, cg CacheGateway, ttl time.Duration) *TickersUsecase {
	return &TickersUsecase{primary: primary, fallback: fallback, cache: cg, ttl: ttl}
}

// GetInfo はティッカー情報を取得します。キャッシュヒット時はストアの値を、
// ミス時は主要プロバイダ（失敗時は設定があれば二次プロバイダ）の値を返し、
// 成功結果を長期TTLで保存します。
func (u *TickersUsecase) GetInfo(ctx context.Context, symbol string) (Result, error) {
	key := cache.Key(cache.NamespaceTickerInfo, symbol)

	if b, ok := u.cache.Lookup(ctx, key); ok {
		var fields map[string]any
		if err := json.Unmarshal(b, &fields); err == nil {
			return Result{Fields: fields, FromCache: true}, nil
		}
		// 壊れたエントリは無視して再取得に回す
		slog.Warn("discarding corrupt cache entry", "key", key)
	}

	info, err := u.fetch(ctx, symbol)
	if err != nil {
		return Result{}, err
	}

	if b, err := json.Marshal(info.Fields); err == nil {
		u.cache.Store(ctx, key, b, u.ttl)
	}
	return Result{Fields: info.Fields}, nil
}

// fetch は主要プロバイダを試し、失敗時に一度だけ二次プロバイダへ
// フォールバックします。二次が未設定なら主要側の失敗をそのまま返します。
func (u *TickersUsecase) fetch(ctx context.Context, symbol string) (entity.TickerInfo, error) {
	info, primaryErr := u.primary.Info(ctx, symbol)
	if primaryErr == nil && info.Valid() {
		return info, nil
	}

	if u.fallback == nil || !u.fallback.Configured() {
		if primaryErr != nil {
			return entity.TickerInfo{}, primaryErr
		}
		return entity.TickerInfo{}, upstream.ErrNoIdentity
	}

	slog.Info("primary provider failed, trying fallback", "symbol", symbol, "error", primaryErr)
	fbInfo, fbErr := u.fallback.Profile(ctx, symbol)
	if fbErr != nil {
		// 両系統失敗: 呼び出し元には識別不能をまとめて報告
		if errors.Is(primaryErr, upstream.ErrNoIdentity) || errors.Is(fbErr, upstream.ErrNoIdentity) {
			return entity.TickerInfo{}, upstream.ErrNoIdentity
		}
		if primaryErr != nil {
			return entity.TickerInfo{}, primaryErr
		}
		return entity.TickerInfo{}, fbErr
	}
	return fbInfo, nil
}

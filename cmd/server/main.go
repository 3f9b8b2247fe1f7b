package main

import (
	"log/slog"
	"os"

	"stock_gateway/internal/app/di"
	"stock_gateway/internal/app/router"
	candlehandler "stock_gateway/internal/feature/candles/transport/handler"
	candleusecase "stock_gateway/internal/feature/candles/usecase"
	markethandler "stock_gateway/internal/feature/market/transport/handler"
	marketusecase "stock_gateway/internal/feature/market/usecase"
	symbollistadapters "stock_gateway/internal/feature/symbollist/adapters"
	symbolhandler "stock_gateway/internal/feature/symbollist/transport/handler"
	symbolusecase "stock_gateway/internal/feature/symbollist/usecase"
	tickerhandler "stock_gateway/internal/feature/tickers/transport/handler"
	tickerusecase "stock_gateway/internal/feature/tickers/usecase"
	"stock_gateway/internal/platform/cache"
	"stock_gateway/internal/platform/config"
	infradb "stock_gateway/internal/platform/db"
	"stock_gateway/internal/platform/memocache"
	infraredis "stock_gateway/internal/platform/redis"
)

func main() {
	cfg := config.Load()

	// Redis
	rdb, err := infraredis.NewRedisClient(cfg)
	if err != nil {
		slog.Warn("redis unavailable, running without cache", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		}()
	}
	gateway := cache.NewGateway(rdb)

	// DB（銘柄カタログ、未設定時はnil）
	db := infradb.OpenDB()
	var symbolRepo symbolusecase.SymbolRepository
	if db != nil {
		symbolRepo = symbollistadapters.NewSymbolRepository(db)
	}

	// 上流プロバイダ
	httpClient := di.NewUpstreamHTTPClient(cfg)
	primary := di.NewPrimary(cfg, httpClient)
	fallback := di.NewFallback(cfg, httpClient)
	market := di.NewMarket(cfg, httpClient)

	// Usecase
	historyTTL := cfg.TTLShort
	if !cfg.CacheHistory {
		historyTTL = 0
	}
	tickerUC := tickerusecase.NewTickersUsecase(primary, fallback, gateway, cfg.TTLLong)
	candleUC := candleusecase.NewCandlesUsecase(primary, gateway, historyTTL, cfg.TTLDefault)
	marketUC := marketusecase.NewMarketUsecase(market, memocache.New(64, cfg.TTLShort))
	symbolUC := symbolusecase.NewSymbolUsecase(market, symbolRepo, gateway, cfg.TTLLong)

	// Handler
	tickerH := tickerhandler.NewTickerHandler(tickerUC)
	candleH := candlehandler.NewCandleHandler(candleUC)
	marketH := markethandler.NewMarketHandler(marketUC)
	symbolH := symbolhandler.NewSymbolHandler(symbolUC)

	// ルータ生成
	r := router.NewRouter(tickerH, candleH, marketH, symbolH, cfg.APIKey)

	// API_KEYチェック（開発中の注意喚起）
	if cfg.APIKey == "" {
		slog.Warn("API_KEY is not set, authenticated routes will reject every request")
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

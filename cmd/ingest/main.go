package main

import (
	"context"
	"log"
	"time"

	"stock_gateway/internal/app/di"
	symbollistadapters "stock_gateway/internal/feature/symbollist/adapters"
	symbolusecase "stock_gateway/internal/feature/symbollist/usecase"
	"stock_gateway/internal/platform/cache"
	"stock_gateway/internal/platform/config"
	infradb "stock_gateway/internal/platform/db"
)

func main() {
	cfg := config.Load()

	db := infradb.OpenDB()
	if db == nil {
		log.Fatal("DB_HOST must be set for catalog ingest")
	}

	httpClient := di.NewUpstreamHTTPClient(cfg)
	market := di.NewMarket(cfg, httpClient)
	repo := symbollistadapters.NewSymbolRepository(db)
	uc := symbolusecase.NewSymbolUsecase(market, repo, cache.NewGateway(nil), cfg.TTLLong)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	n, err := uc.Ingest(ctx)
	if err != nil {
		log.Fatal("ingest failed: ", err)
	}
	log.Printf("ingest ok: %d symbols", n)
}

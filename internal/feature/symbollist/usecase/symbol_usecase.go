// Package usecase implements the business logic for symbol catalog operations.
package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"stock_gateway/internal/feature/symbollist/domain/entity"
	"stock_gateway/internal/platform/cache"
)

// ListingProvider abstracts the upstream reference listing.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider.
type ListingProvider interface {
	ListTickers(ctx context.Context) ([]entity.Symbol, error)
}

// SymbolRepository abstracts the persistence layer for the local ticker catalog.
type SymbolRepository interface {
	ListActiveCodes(ctx context.Context) ([]string, error)
	UpsertBatch(ctx context.Context, symbols []entity.Symbol) error
}

// CacheGateway is the read-through lookup/store surface the usecase needs.
type CacheGateway interface {
	Lookup(ctx context.Context, key string) ([]byte, bool)
	Store(ctx context.Context, key string, val []byte, ttl time.Duration)
}

// SymbolUsecase serves the full symbol listing with a read-through cache in
// front of the upstream reference listing, falling back to the local catalog
// when the upstream is unreachable.
type SymbolUsecase struct {
	provider ListingProvider
	repo     SymbolRepository
	cache    CacheGateway
	ttl      time.Duration
}

// NewSymbolUsecase creates a new SymbolUsecase. repo may be nil when no
// catalog database is configured; the fallback is then disabled.
func NewSymbolUsecase(provider ListingProvider, repo SymbolRepository, cache CacheGateway, ttl time.Duration) *SymbolUsecase {
	return &SymbolUsecase{provider: provider, repo: repo, cache: cache, ttl: ttl}
}

// ListAll returns every known ticker code. The listing changes rarely, so
// cached entries carry the long TTL tier.
func (u *SymbolUsecase) ListAll(ctx context.Context) ([]string, bool, error) {
	key := cache.Key(cache.NamespaceSymbols, "all")

	if b, ok := u.cache.Lookup(ctx, key); ok {
		var codes []string
		if err := json.Unmarshal(b, &codes); err == nil {
			return codes, true, nil
		}
		slog.Warn("discarding corrupt cache entry", "key", key)
	}

	symbols, err := u.provider.ListTickers(ctx)
	if err != nil {
		if u.repo == nil {
			return nil, false, err
		}
		// 上流障害時はローカルカタログへフォールバック
		codes, dbErr := u.repo.ListActiveCodes(ctx)
		if dbErr != nil || len(codes) == 0 {
			return nil, false, err
		}
		slog.Warn("serving symbol listing from local catalog", "error", err)
		return codes, false, nil
	}

	codes := make([]string, 0, len(symbols))
	for _, s := range symbols {
		codes = append(codes, s.Code)
	}

	if b, err := json.Marshal(codes); err == nil {
		u.cache.Store(ctx, key, b, u.ttl)
	}
	return codes, false, nil
}

// Ingest refreshes the local catalog from the upstream reference listing.
func (u *SymbolUsecase) Ingest(ctx context.Context) (int, error) {
	symbols, err := u.provider.ListTickers(ctx)
	if err != nil {
		return 0, err
	}
	if len(symbols) == 0 {
		return 0, nil
	}
	if err := u.repo.UpsertBatch(ctx, symbols); err != nil {
		return 0, err
	}
	return len(symbols), nil
}

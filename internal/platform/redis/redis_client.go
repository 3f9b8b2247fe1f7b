package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"stock_gateway/internal/platform/config"
)

// NewRedisClient connects to the cache store described by the configuration.
// An empty address means the gateway runs without a cache.
func NewRedisClient(cfg config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.RedisAddr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.RedisAddr)
	return rdb, nil
}

// Package db opens the relational store backing the local symbol catalog.
package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"stock_gateway/internal/feature/symbollist/domain/entity"
)

// OpenDB connects to Postgres using DB_* environment variables, retrying
// briefly so the service survives a database that is still starting up.
// Returns nil when DB_HOST is unset; the catalog fallback is then disabled.
func OpenDB() *gorm.DB {
	host := os.Getenv("DB_HOST")
	if host == "" {
		slog.Warn("DB_HOST not set, symbol catalog fallback disabled")
		return nil
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host,
		getenv("DB_PORT", "5432"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
	)

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			slog.Error("DB connect failed after 60s", "error", err)
			os.Exit(1)
		}
		slog.Warn("DB connect failed, retrying", "error", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（Symbolカタログ）
		if err := db.AutoMigrate(&entity.Symbol{}); err != nil {
			slog.Error("failed to migrate", "error", err)
			os.Exit(1)
		}
	}

	return db
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package di

import (
	"context"
	"fmt"
	"log/slog"

	pairsadapters "crypto_dashboard/internal/feature/pairs/adapters"
	"crypto_dashboard/internal/feature/pairs/domain/entity"
	pairsusecase "crypto_dashboard/internal/feature/pairs/usecase"
	"crypto_dashboard/internal/platform/config"
	"crypto_dashboard/internal/platform/db"
	"crypto_dashboard/internal/platform/http/handler"
)

// NewPairRepository opens the configured database, or serves the default
// pairs from memory when no driver is set.
func NewPairRepository(ctx context.Context, cfg *config.Config, checks map[string]handler.Check) (pairsusecase.PairRepository, func() error, error) {
	noop := func() error { return nil }

	if cfg.Database.Driver == "" {
		slog.Info("no database configured, serving default pairs from memory")
		return pairsadapters.NewMemoryRepository(entity.DefaultPairs), noop, nil
	}

	gdb, err := db.Open(db.Config{Driver: cfg.Database.Driver, DSN: cfg.Database.DSN}, &entity.Pair{})
	if err != nil {
		return nil, noop, fmt.Errorf("open pairs database: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, noop, err
	}

	if cfg.Database.Seed {
		if err := pairsadapters.Seed(ctx, gdb, entity.DefaultPairs); err != nil {
			_ = sqlDB.Close()
			return nil, noop, err
		}
	}

	checks["db"] = sqlDB.PingContext
	return pairsadapters.NewPairRepository(gdb), sqlDB.Close, nil
}

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/config"
)

// Open connects to the ledger store and, when configured, brings the schema
// up to date. Any failure is reported as apperr.StorageUnavailableErr.
func Open(ctx context.Context, cfg config.Postgres) (*pgxpool.Pool, error) {
	pool, err := NewPgxPool(ctx, cfg)
	if err != nil {
		return nil, apperr.StorageUnavailableErr.WrapParent(fmt.Errorf("create pgx pool: %w", err))
	}

	if cfg.AutoMigrate {
		if err := Migrate(pool); err != nil {
			pool.Close()
			return nil, apperr.StorageUnavailableErr.WrapParent(fmt.Errorf("migrate database: %w", err))
		}
	}

	return pool, nil
}

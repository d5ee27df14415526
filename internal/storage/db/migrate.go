package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies every pending migration. Already applied versions are skipped,
// so it is safe to run on each start.
func Migrate(pool *pgxpool.Pool) error {
	ctx := context.Background()

	provider, closeDB, err := newMigrationProvider(pool)
	if err != nil {
		return err
	}
	defer closeDB()

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// SchemaVersion returns the latest applied migration version.
func SchemaVersion(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	provider, closeDB, err := newMigrationProvider(pool)
	if err != nil {
		return 0, err
	}
	defer closeDB()

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose get db version: %w", err)
	}

	return version, nil
}

func newMigrationProvider(pool *pgxpool.Pool) (*goose.Provider, func(), error) {
	fsys, err := migrationFS()
	if err != nil {
		return nil, nil, err
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, fsys)
	if err != nil {
		//nolint:errcheck
		sqlDB.Close()
		return nil, nil, fmt.Errorf("create goose provider: %w", err)
	}

	return provider, func() {
		//nolint:errcheck
		sqlDB.Close()
	}, nil
}

func migrationFS() (fs.FS, error) {
	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("sub migrations fs: %w", err)
	}
	return fsys, nil
}

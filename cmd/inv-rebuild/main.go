// Command inv-rebuild recomputes every product aggregate from the ledger.
// Use it after a manual ledger repair or when aggregates are suspected to
// have drifted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/config"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/log"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/repository"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/service"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-ledger/pkg/validator"
)

func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "Abort the rebuild after this long")
	flag.Parse()

	if err := run(*timeout); err != nil {
		fmt.Printf("error running rebuild application: %v\n", err)
		os.Exit(1)
	}
}

func run(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log       config.Log
		Postgres  config.Postgres
		Inventory config.Inventory
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	pgxPool, err := db.Open(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error opening ledger store: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	inventoryService := service.NewInventoryService(
		dbClient,
		v,
		repository.NewTransactionRepository(dbClient),
		repository.NewProductRepository(dbClient),
		repository.NewOutboxMsgRepository(dbClient),
		cfg.Inventory.LowStockThreshold,
	)

	logger.InfoContext(ctx, "starting product rebuild")
	start := time.Now()

	n, err := inventoryService.RebuildProducts(ctx)
	if err != nil {
		return fmt.Errorf("error rebuilding products: %w", err)
	}

	logger.InfoContext(ctx, "product rebuild completed successfully",
		slog.Int("products", n), slog.Duration("duration", time.Since(start)))

	return nil
}

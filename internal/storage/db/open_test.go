package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/config"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/storage/db"
)

func TestOpen(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	base := config.Postgres{
		Host:            "127.0.0.1",
		Port:            1,
		User:            "inventory",
		Password:        "secret",
		DB:              "ledger",
		SSLMode:         "disable",
		MaxConns:        2,
		MinConns:        0,
		MaxConnLifetime: time.Minute,
		MaxConnIdleTime: time.Minute,
		AutoMigrate:     true,
	}

	t.Run("Should report unreachable store as storage unavailable", func(t *testing.T) {
		pool, err := db.Open(ctx, base)

		require.Error(t, err)
		assert.Nil(t, pool)
		assert.ErrorIs(t, err, apperr.StorageUnavailableErr)
	})

	t.Run("Should report invalid settings as storage unavailable", func(t *testing.T) {
		cfg := base
		cfg.SSLMode = "not-a-mode"

		_, err := db.Open(ctx, cfg)

		assert.ErrorIs(t, err, apperr.StorageUnavailableErr)
	})
}

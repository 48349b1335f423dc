package main

import (
	"context"
	"log/slog"

	"github.com/JonMunkholm/nonprofit/internal/config"
	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/store/memory"
	"github.com/JonMunkholm/nonprofit/internal/store/postgres"
)

// openStore returns the configured store and a function releasing it.
// The PostgreSQL schema is migrated on open.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (core.Store, func(), error) {
	if cfg.Memory {
		slog.Warn("using in-memory store; data is lost on exit")
		return memory.New(), func() {}, nil
	}

	pool, err := postgres.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	store := postgres.New(pool)
	if err := store.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return store, pool.Close, nil
}

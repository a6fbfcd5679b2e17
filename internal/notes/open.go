package notes

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rickgao/notepad-sync/internal/config"
	"github.com/rickgao/notepad-sync/internal/database"
)

// Open builds the Store selected by cfg.Server.Storage, fronted by a read
// cache when cfg.Server.CacheTTL is set. The returned close function
// releases any database pool and is never nil.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}
	store, closeFn, err := openBackend(ctx, cfg, logger)
	if err != nil || cfg.Server.CacheTTL <= 0 {
		return store, closeFn, err
	}
	logger.Info("note read cache enabled", "ttl", cfg.Server.CacheTTL)
	return NewCachedStore(store, cfg.Server.CacheTTL), closeFn, nil
}

func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, func(), error) {
	noop := func() {}
	maxSize := cfg.Server.MaxContentSize

	switch cfg.Server.Storage {
	case config.StorageMemory:
		logger.Info("using memory note store")
		return NewMemoryStore(maxSize), noop, nil

	case config.StorageFile, "":
		store, err := NewFileStore(cfg.Server.NotesDir, maxSize)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("using file note store", "dir", cfg.Server.NotesDir)
		return store, noop, nil

	case config.StoragePostgres:
		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, noop, fmt.Errorf("connect notes database: %w", err)
		}
		store := NewPostgresStore(pool, maxSize)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		logger.Info("using postgres note store",
			"host", cfg.Database.Host,
			"database", cfg.Database.Name,
		)
		return store, pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage %q", cfg.Server.Storage)
	}
}

package notes

import (
	"context"
	"testing"
	"time"

	"github.com/rickgao/notepad-sync/internal/config"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		cfg := config.Default()
		cfg.Server.Storage = config.StorageMemory

		store, closeFn, err := Open(ctx, cfg, nil)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer closeFn()
		if _, ok := store.(*MemoryStore); !ok {
			t.Errorf("store is %T, want *MemoryStore", store)
		}
	})

	t.Run("file", func(t *testing.T) {
		cfg := config.Default()
		cfg.Server.Storage = config.StorageFile
		cfg.Server.NotesDir = t.TempDir()

		store, closeFn, err := Open(ctx, cfg, nil)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer closeFn()
		fs, ok := store.(*FileStore)
		if !ok {
			t.Fatalf("store is %T, want *FileStore", store)
		}
		if fs.Dir() != cfg.Server.NotesDir {
			t.Errorf("Dir = %q, want %q", fs.Dir(), cfg.Server.NotesDir)
		}
	})

	t.Run("cached", func(t *testing.T) {
		cfg := config.Default()
		cfg.Server.Storage = config.StorageMemory
		cfg.Server.CacheTTL = time.Minute

		store, closeFn, err := Open(ctx, cfg, nil)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer closeFn()
		if _, ok := store.(*CachedStore); !ok {
			t.Errorf("store is %T, want *CachedStore", store)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := config.Default()
		cfg.Server.Storage = "s3"

		_, closeFn, err := Open(ctx, cfg, nil)
		if err == nil {
			t.Fatal("expected error for unknown storage")
		}
		closeFn()
	})
}

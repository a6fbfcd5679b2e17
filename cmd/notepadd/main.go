// notepadd serves notes over REST and live WebSocket channels.
// Usage: go run ./cmd/notepadd --config configs/notepad.example.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/notepad-sync/internal/config"
	"github.com/rickgao/notepad-sync/internal/logging"
	"github.com/rickgao/notepad-sync/internal/notes"
	"github.com/rickgao/notepad-sync/internal/server"
	"github.com/rickgao/notepad-sync/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults when empty)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadAndValidate(*configPath)
		if err != nil {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	logger := logging.New(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	logger.Info("starting notepadd",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	store, closeStore, err := notes.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open note store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	srv := server.New(server.Config{
		MaxContentSize: cfg.Server.MaxContentSize,
		WriteTimeout:   cfg.Sync.WriteTimeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, store, logger)

	httpServer := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", "addr", cfg.Server.ListenAddr, "storage", cfg.Server.Storage)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...", "connections", srv.Connections())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		srv.CloseConnections()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
		closeStore()
		os.Exit(1)
	}

	logger.Info("notepadd stopped")
}

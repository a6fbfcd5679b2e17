// notepad edits one note from the terminal. Every stdin line replaces the
// note's content and is saved over the live channel, or over HTTP when the
// channel is down.
// Usage: go run ./cmd/notepad --config configs/notepad.example.yaml --doc todo
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/rickgao/notepad-sync/internal/api"
	"github.com/rickgao/notepad-sync/internal/config"
	"github.com/rickgao/notepad-sync/internal/connection"
	"github.com/rickgao/notepad-sync/internal/logging"
	"github.com/rickgao/notepad-sync/internal/notes"
	"github.com/rickgao/notepad-sync/internal/status"
	"github.com/rickgao/notepad-sync/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults when empty)")
	docID := flag.String("doc", "", "note id (a new id is generated when empty)")
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

	// stdout carries note content; logs go to stderr
	logger := logging.New(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	id := *docID
	if id == "" {
		id = notes.NewID()
	}
	if err := notes.ValidateID(id); err != nil {
		logger.Error("invalid note id", "error", err)
		os.Exit(1)
	}

	baseURL, err := cfg.API.ResolveBaseURL()
	if err != nil {
		logger.Error("invalid api config", "error", err)
		os.Exit(1)
	}

	logger.Info("starting notepad",
		"version", version.Version,
		"doc", id,
		"api_url", baseURL,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	apiClient := api.NewClient(
		baseURL,
		cfg.API.Token,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, time.Second),
	)

	store := status.NewStore()
	store.SetCurrentFile(id)
	load(ctx, apiClient, store, logger)
	fmt.Fprintln(os.Stdout, store.Content())

	unsubscribe := store.Subscribe(statusPrinter(os.Stderr))
	defer unsubscribe()

	mgr := connection.NewManager(managerConfig(cfg), apiClient, store, logger)
	mgr.Connect(id)
	defer mgr.Disconnect()

	lines := make(chan string)
	go readLines(os.Stdin, lines)

	for {
		select {
		case <-ctx.Done():
			logger.Info("notepad stopped", "stats", mgr.Stats())
			return

		case line, ok := <-lines:
			if !ok {
				logger.Info("stdin closed", "stats", mgr.Stats())
				return
			}
			store.SetContent(line)
			store.SetSaveStatus(status.Saving)
			mgr.SendSave(ctx, id, line)
		}
	}
}

// load fetches the note into the store. A failed load leaves the note empty.
func load(ctx context.Context, client *api.Client, store *status.Store, logger *slog.Logger) {
	store.SetLoading(true)
	defer store.SetLoading(false)

	note, err := client.GetNote(ctx, store.CurrentFile())
	if err != nil {
		logger.Warn("failed to load note", "doc", store.CurrentFile(), "error", err)
		return
	}
	store.SetContent(note.Content)
}

func managerConfig(cfg *config.Config) connection.ManagerConfig {
	mc := connection.DefaultManagerConfig()
	mc.APIBaseURL = cfg.API.BaseURL
	mc.PageURL = cfg.API.PageURL
	mc.WSHost = cfg.Sync.WSHost
	mc.MaxReconnectAttempts = cfg.Sync.MaxReconnectAttempts
	mc.ReconnectDelay = cfg.Sync.ReconnectDelay
	mc.PollInterval = cfg.Sync.PollInterval
	mc.PollTimeout = cfg.API.Timeout
	mc.Client.WriteTimeout = cfg.Sync.WriteTimeout
	mc.Client.PingTimeout = cfg.Sync.PingTimeout
	return mc
}

var (
	savedColor  = color.New(color.FgGreen)
	savingColor = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed, color.Bold)
)

// statusPrinter writes a line to w whenever the save status changes.
func statusPrinter(w io.Writer) func(status.Snapshot) {
	var mu sync.Mutex
	last := status.Saved

	return func(s status.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		if s.SaveStatus == last {
			return
		}
		last = s.SaveStatus

		switch s.SaveStatus {
		case status.Saved:
			savedColor.Fprintf(w, "[%s] saved at %s\n", s.CurrentFile, s.LastSaved.Format(time.TimeOnly))
		case status.Saving:
			savingColor.Fprintf(w, "[%s] %s\n", s.CurrentFile, s.SaveStatus)
		case status.Error:
			errorColor.Fprintf(w, "[%s] %s\n", s.CurrentFile, s.SaveStatus)
		default:
			fmt.Fprintf(w, "[%s] %s\n", s.CurrentFile, s.SaveStatus)
		}
	}
}

func readLines(r io.Reader, out chan<- string) {
	defer close(out)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		out <- scanner.Text()
	}
}

package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rickgao/notepad-sync/internal/model"
)

// ErrAlreadyRunning is returned by Start when a poll loop is active.
var ErrAlreadyRunning = errors.New("poller already running")

// NoteFetcher retrieves a note's current content in one attempt. A failed
// fetch is retried by the next tick.
type NoteFetcher interface {
	FetchNote(ctx context.Context, docID string) (*model.Note, error)
}

// ContentStore receives fetched content.
type ContentStore interface {
	Content() string
	SetContent(content string)
}

// Config holds poller configuration.
type Config struct {
	Interval time.Duration // Poll interval (default: 5s)
	Timeout  time.Duration // Per-request timeout (default: 10s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: 5 * time.Second,
		Timeout:  10 * time.Second,
	}
}

// Poller periodically re-fetches one note via the REST API.
type Poller struct {
	cfg     Config
	fetcher NoteFetcher
	store   ContentStore
	logger  *slog.Logger

	mu     sync.Mutex
	docID  string
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Poller.
func New(cfg Config, fetcher NoteFetcher, store ContentStore, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		cfg:     cfg,
		fetcher: fetcher,
		store:   store,
		logger:  logger,
	}
}

// Start begins polling docID. The first fetch happens one interval later.
func (p *Poller) Start(ctx context.Context, docID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.docID = docID

	p.wg.Add(1)
	go p.run(ctx, docID)

	p.logger.Info("note poller started",
		"doc", docID,
		"interval", p.cfg.Interval,
	)

	return nil
}

// Stop cancels the loop and waits for an in-flight poll to finish, so no
// store write happens after Stop returns. Stopping an idle poller is a no-op.
func (p *Poller) Stop(ctx context.Context) error {
	p.mu.Lock()
	cancel := p.cancel
	docID := p.docID
	p.cancel = nil
	p.docID = ""
	p.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("note poller stopped", "doc", docID)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Active reports whether a poll loop is running.
func (p *Poller) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// DocID returns the document being polled, or "" when idle.
func (p *Poller) DocID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.docID
}

// run is the main polling loop.
func (p *Poller) run(ctx context.Context, docID string) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx, docID)
		}
	}
}

// poll fetches docID once and applies it to the store if it changed.
func (p *Poller) poll(ctx context.Context, docID string) {
	reqCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	note, err := p.fetcher.FetchNote(reqCtx, docID)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("failed to poll note", "doc", docID, "error", err)
		}
		return
	}

	// Stopped while the request was in flight.
	if ctx.Err() != nil {
		return
	}

	if note.Content == p.store.Content() {
		return
	}

	p.store.SetContent(note.Content)
	p.logger.Debug("note content updated from poll",
		"doc", docID,
		"size", len(note.Content),
	)
}

package connection

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rickgao/notepad-sync/internal/model"
	"github.com/rickgao/notepad-sync/internal/poller"
	"github.com/rickgao/notepad-sync/internal/status"
	"github.com/rickgao/notepad-sync/internal/version"
)

// Manager owns the live channel for the open document.
type Manager interface {
	// Connect opens a channel for docID, superseding any previous session.
	// It returns immediately; the dial runs in the background.
	Connect(docID string)

	// SendSave persists content over the channel when it is open, and over
	// HTTP otherwise. The outcome is reported through the save status.
	SendSave(ctx context.Context, docID, content string)

	// Disconnect tears down the channel, reconnect timer and poller.
	Disconnect()

	// Channel returns the current channel, or nil when none is attached.
	Channel() Client

	// Stats returns a snapshot of the current session.
	Stats() ManagerStats
}

// NoteAPI is the REST surface used for HTTP saves and polling.
type NoteAPI interface {
	poller.NoteFetcher
	SaveNote(ctx context.Context, docID, content string) (*model.Note, error)
}

// StatusStore receives save outcomes and polled content.
type StatusStore interface {
	poller.ContentStore
	SetSaveStatus(s status.SaveStatus)
}

// ClientFactory creates the Client for one session.
type ClientFactory func(cfg ClientConfig, logger *slog.Logger) Client

// ManagerOption configures a Manager.
type ManagerOption func(*manager)

// WithClientFactory replaces the gorilla-backed client.
func WithClientFactory(f ClientFactory) ManagerOption {
	return func(m *manager) {
		m.newClient = f
	}
}

// WithClock sets the time source used for outbound frame timestamps.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *manager) {
		m.now = now
	}
}

// session is one Connect call's worth of state. Callbacks compare their
// session against manager.sess and bail out when it has been replaced.
type session struct {
	docID  string
	url    string
	ctx    context.Context
	cancel context.CancelFunc
}

// manager implements the Manager interface.
type manager struct {
	cfg       ManagerConfig
	notes     NoteAPI
	store     StatusStore
	logger    *slog.Logger
	newClient ClientFactory
	now       func() time.Time
	poller    *poller.Poller

	mu         sync.Mutex
	target     string
	sess       *session
	client     Client
	connecting bool
	attempts   int
	reconnect  *pendingReconnect
}

// pendingReconnect is a scheduled reconnect. The timer callback compares
// its own value against manager.reconnect, so a stopped timer that already
// fired does nothing.
type pendingReconnect struct {
	timer *time.Timer
}

// NewManager creates a new Connection Manager.
//
// Store subscribers are invoked synchronously from the manager's goroutines
// and must not call back into the Manager.
func NewManager(cfg ManagerConfig, notes NoteAPI, store StatusStore, logger *slog.Logger, opts ...ManagerOption) Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Client.UserAgent == "" {
		cfg.Client.UserAgent = version.UserAgent()
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = poller.DefaultConfig().Timeout
	}

	m := &manager{
		cfg:       cfg,
		notes:     notes,
		store:     store,
		logger:    logger,
		newClient: NewClient,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.poller = poller.New(poller.Config{
		Interval: cfg.PollInterval,
		Timeout:  cfg.PollTimeout,
	}, notes, store, logger)

	return m
}

// Connect opens a channel for docID.
func (m *manager) Connect(docID string) {
	m.mu.Lock()
	ok := m.connectLocked(docID)
	m.mu.Unlock()

	if !ok {
		m.store.SetSaveStatus(status.Error)
	}
}

// connectLocked starts a new session for docID. It returns false when the
// channel URL cannot be built. Caller must hold m.mu.
func (m *manager) connectLocked(docID string) bool {
	if m.connecting && m.target == docID {
		m.logger.Debug("connect already in progress", "doc", docID)
		return true
	}

	m.cancelReconnectLocked()
	m.detachLocked()
	m.stopPollingLocked()

	if docID != m.target {
		m.attempts = 0
	}
	m.target = docID

	wsURL, err := BuildWSURL(m.cfg.APIBaseURL, m.cfg.PageURL, m.cfg.WSHost, docID)
	if err != nil {
		m.logger.Error("failed to build websocket url", "doc", docID, "error", err)
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{
		docID:  docID,
		url:    wsURL,
		ctx:    ctx,
		cancel: cancel,
	}
	m.sess = sess
	m.connecting = true

	m.logger.Info("connecting", "doc", docID, "url", wsURL, "attempt", m.attempts)
	go m.run(sess)

	return true
}

// Disconnect tears everything down. Safe to call repeatedly.
func (m *manager) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.target == "" && m.sess == nil && m.client == nil && m.reconnect == nil && !m.poller.Active() {
		return
	}

	m.cancelReconnectLocked()
	m.detachLocked()
	m.stopPollingLocked()
	m.connecting = false

	m.logger.Info("disconnected", "doc", m.target)
	m.target = ""
}

// Channel returns the current channel.
func (m *manager) Channel() Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client
}

// Stats returns a snapshot of the current session.
func (m *manager) Stats() ManagerStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	polling := m.poller.Active()
	state := StateIdle
	switch {
	case polling:
		state = StatePolling
	case m.connecting:
		state = StateConnecting
	case m.client != nil && m.client.IsConnected():
		state = StateOpen
	case m.sess != nil:
		state = StateClosed
	}

	return ManagerStats{
		State:            state,
		Target:           m.target,
		Attempts:         m.attempts,
		Polling:          polling,
		PollingDoc:       m.poller.DocID(),
		ReconnectPending: m.reconnect != nil,
	}
}

// run dials the channel for sess and pumps its events until it closes or
// the session is cancelled.
func (m *manager) run(sess *session) {
	logger := m.logger.With("doc", sess.docID)

	clientCfg := m.cfg.Client
	clientCfg.URL = sess.url
	c := m.newClient(clientCfg, logger)

	if err := c.Connect(sess.ctx); err != nil {
		logger.Warn("websocket connect failed", "url", sess.url, "error", err)
		c.Close()
		m.handleError(sess)
		m.handleClose(sess)
		return
	}

	if !m.handleOpen(sess, c) {
		c.Close()
		return
	}

	for {
		select {
		case <-sess.ctx.Done():
			return

		case err := <-c.Errors():
			m.drain(sess, c)
			if IsCleanClose(err) {
				logger.Info("websocket closed by server", "reason", err)
			} else {
				logger.Warn("websocket error", "error", err)
				m.handleError(sess)
			}
			c.Close()
			m.handleClose(sess)
			return

		case msg := <-c.Messages():
			m.handleMessage(sess, msg.Data)
		}
	}
}

// drain delivers frames that arrived before the channel failed.
func (m *manager) drain(sess *session, c Client) {
	for {
		select {
		case msg := <-c.Messages():
			m.handleMessage(sess, msg.Data)
		default:
			return
		}
	}
}

func (m *manager) handleOpen(sess *session, c Client) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sess != sess {
		return false
	}
	m.client = c
	m.attempts = 0
	m.connecting = false

	m.logger.Info("websocket connected", "doc", sess.docID)
	return true
}

func (m *manager) handleError(sess *session) {
	m.mu.Lock()
	if m.sess != sess {
		m.mu.Unlock()
		return
	}
	m.connecting = false
	m.mu.Unlock()

	m.store.SetSaveStatus(status.Error)
}

// handleClose detaches the channel and schedules a reconnect while attempts
// remain. The delay grows linearly: 0, 1x, 2x, ... ReconnectDelay.
func (m *manager) handleClose(sess *session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sess != sess {
		return
	}
	m.connecting = false
	m.client = nil

	if m.target != sess.docID {
		return
	}
	if m.attempts >= m.cfg.MaxReconnectAttempts {
		m.logger.Warn("max reconnection attempts reached",
			"doc", sess.docID,
			"attempts", m.attempts,
		)
		return
	}

	delay := m.cfg.ReconnectDelay * time.Duration(m.attempts)
	m.logger.Info("scheduling reconnect",
		"doc", sess.docID,
		"delay", delay,
		"attempt", m.attempts+1,
	)

	p := &pendingReconnect{}
	p.timer = time.AfterFunc(delay, func() {
		m.fireReconnect(sess, p)
	})
	m.reconnect = p
}

func (m *manager) fireReconnect(sess *session, p *pendingReconnect) {
	m.mu.Lock()
	if m.sess != sess || m.reconnect != p {
		m.mu.Unlock()
		return
	}
	m.reconnect = nil
	m.attempts++
	ok := m.connectLocked(sess.docID)
	m.mu.Unlock()

	if !ok {
		m.store.SetSaveStatus(status.Error)
	}
}

// cancelReconnectLocked stops a pending reconnect. Caller must hold m.mu.
func (m *manager) cancelReconnectLocked() {
	if m.reconnect != nil {
		m.reconnect.timer.Stop()
		m.reconnect = nil
	}
}

// detachLocked ends the current session and closes its channel. Events
// still in flight for it are dropped. Caller must hold m.mu.
func (m *manager) detachLocked() {
	if m.sess != nil {
		m.sess.cancel()
		m.sess = nil
	}
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			m.logger.Debug("close websocket", "error", err)
		}
		m.client = nil
	}
}

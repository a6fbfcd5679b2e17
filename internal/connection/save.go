package connection

import (
	"context"
	"encoding/json"

	"github.com/rickgao/notepad-sync/internal/model"
	"github.com/rickgao/notepad-sync/internal/status"
)

// SendSave persists content for docID.
//
// With an open channel the save frame is written and SendSave returns; the
// acknowledgement arrives later as a save_response. Without one, the save
// goes over HTTP, and the first such save also starts polling.
func (m *manager) SendSave(ctx context.Context, docID, content string) {
	m.mu.Lock()
	c := m.client
	if c != nil && c.IsConnected() {
		m.mu.Unlock()
		m.sendViaChannel(c, docID, content)
		return
	}
	if !m.poller.Active() {
		m.startPollingLocked(docID)
	}
	m.mu.Unlock()

	m.saveViaHTTP(ctx, docID, content)
}

func (m *manager) sendViaChannel(c Client, docID, content string) {
	data, err := json.Marshal(model.NewSaveMessage(content, m.now()))
	if err != nil {
		m.logger.Error("failed to encode save", "doc", docID, "error", err)
		m.store.SetSaveStatus(status.Error)
		return
	}
	if err := c.Send(data); err != nil {
		m.logger.Warn("failed to send save", "doc", docID, "error", err)
		m.store.SetSaveStatus(status.Error)
		return
	}
	m.logger.Debug("save sent", "doc", docID, "bytes", len(content))
}

// saveViaHTTP persists content with a single POST. Success is reported the
// same way a channel acknowledgement is.
func (m *manager) saveViaHTTP(ctx context.Context, docID, content string) {
	if _, err := m.notes.SaveNote(ctx, docID, content); err != nil {
		m.logger.Warn("http save failed", "doc", docID, "error", err)
		m.store.SetSaveStatus(status.Error)
		return
	}

	m.dispatch(model.InboundMessage{
		Type:      model.TypeSaveResponse,
		Status:    model.StatusSuccess,
		Message:   "saved via http",
		Timestamp: model.FormatTimestamp(m.now()),
	})
}

// startPollingLocked switches to degraded mode. Caller must hold m.mu.
func (m *manager) startPollingLocked(docID string) {
	if err := m.poller.Start(context.Background(), docID); err != nil {
		m.logger.Warn("failed to start polling", "doc", docID, "error", err)
		return
	}
	m.attempts = 0
	m.logger.Info("live channel unavailable, polling", "doc", docID, "interval", m.cfg.PollInterval)
}

// stopPollingLocked stops the poller and waits for an in-flight fetch.
// Caller must hold m.mu.
func (m *manager) stopPollingLocked() {
	if !m.poller.Active() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.PollTimeout)
	defer cancel()
	if err := m.poller.Stop(ctx); err != nil {
		m.logger.Warn("poller did not stop in time", "error", err)
	}
}

// handleMessage decodes one frame from sess. Frames from a superseded
// session and frames that are not valid JSON are dropped.
func (m *manager) handleMessage(sess *session, data []byte) {
	m.mu.Lock()
	current := m.sess == sess
	m.mu.Unlock()
	if !current {
		return
	}

	var msg model.InboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		m.logger.Warn("ignoring malformed message", "doc", sess.docID, "error", err)
		return
	}
	m.dispatch(msg)
}

// dispatch maps an inbound message onto the save status.
func (m *manager) dispatch(msg model.InboundMessage) {
	switch msg.Type {
	case model.TypeSaveResponse:
		if msg.Succeeded() {
			m.store.SetSaveStatus(status.Saved)
			return
		}
		m.logger.Warn("save rejected", "status", msg.Status, "message", msg.Message)
		m.store.SetSaveStatus(status.Error)

	case model.TypeError:
		m.logger.Warn("server error", "message", msg.Message)
		m.store.SetSaveStatus(status.Error)

	default:
		m.logger.Debug("ignoring message", "type", msg.Type)
	}
}

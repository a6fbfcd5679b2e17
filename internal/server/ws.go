package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rickgao/notepad-sync/internal/model"
	"github.com/rickgao/notepad-sync/internal/notes"
)

const (
	msgSaved    = "saved"
	msgDeleted  = "empty note deleted"
	msgNotFound = "note does not exist"
)

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := notes.ValidateID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		s.logger.Warn("websocket upgrade failed", "doc", id, "error", err)
		return
	}
	ws.SetReadLimit(frameLimit(s.cfg.MaxContentSize))

	c := &wsConn{
		id:           uuid.NewString(),
		docID:        id,
		ws:           ws,
		writeTimeout: s.cfg.WriteTimeout,
	}
	logger := s.logger.With("doc", id, "conn", c.id)

	if replaced := s.conns.add(c); replaced != nil {
		logger.Info("newer channel replaces previous", "previous", replaced.id)
	} else {
		logger.Info("channel opened")
	}
	defer func() {
		s.conns.remove(c)
		ws.Close()
		logger.Info("channel closed")
	}()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("channel read failed", "error", err)
			}
			return
		}

		var frame model.SaveMessage
		if err := json.Unmarshal(data, &frame); err != nil {
			logger.Warn("malformed frame, closing", "error", err)
			c.writeJSON(model.InboundMessage{Type: model.TypeError, Message: err.Error()})
			c.close(websocket.CloseUnsupportedData, "malformed frame")
			return
		}
		if frame.Type != model.TypeSave {
			logger.Debug("ignoring frame", "type", frame.Type)
			continue
		}

		resp := model.InboundMessage{
			Type:      model.TypeSaveResponse,
			Status:    model.StatusSuccess,
			Timestamp: frame.Timestamp,
		}
		msg, err := s.applySave(r.Context(), id, frame.Content)
		if err != nil {
			logger.Warn("save failed", "error", err)
			resp.Status = "error"
			resp.Message = err.Error()
		} else {
			resp.Message = msg
			logger.Debug("note saved", "size", len(frame.Content), "via", "websocket", "result", msg)
		}

		if err := c.writeJSON(resp); err != nil {
			logger.Warn("failed to send save response", "error", err)
			return
		}
	}
}

// applySave writes content, or deletes the note when content is blank.
func (s *Server) applySave(ctx context.Context, id, content string) (string, error) {
	if strings.TrimSpace(content) != "" {
		if _, err := s.store.Put(ctx, id, content); err != nil {
			return "", err
		}
		return msgSaved, nil
	}

	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return "", err
	}
	if !exists {
		return msgNotFound, nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return "", err
	}
	return msgDeleted, nil
}

// frameLimit bounds an inbound frame in bytes. A character may arrive as a
// surrogate pair escape ("\ud83d\ude00", 12 bytes), so oversize content
// still decodes and gets an error reply instead of a dropped connection.
func frameLimit(maxChars int) int64 {
	return int64(maxChars)*12 + 1024
}

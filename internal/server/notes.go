package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rickgao/notepad-sync/internal/model"
	"github.com/rickgao/notepad-sync/internal/notes"
)

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := notes.ValidateID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := s.store.Get(r.Context(), id)
	if errors.Is(err, notes.ErrNotFound) {
		// Unsaved notes read as empty; nothing is created.
		writeJSON(w, http.StatusOK, notes.Empty(id, s.now()))
		return
	}
	if err != nil {
		s.logger.Error("failed to read note", "doc", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleSaveNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req model.SaveRequest
	// Four bytes per character plus JSON overhead
	body := http.MaxBytesReader(w, r.Body, int64(s.cfg.MaxContentSize)*4+1024)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	note, err := s.store.Put(r.Context(), id, req.Content)
	switch {
	case errors.Is(err, notes.ErrInvalidID), errors.Is(err, notes.ErrTooLarge):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.logger.Error("failed to save note", "doc", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Debug("note saved", "doc", id, "size", note.Size, "via", "http")
	writeJSON(w, http.StatusOK, note)
}

package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rickgao/notepad-sync/internal/notes"
)

// Config holds server settings.
type Config struct {
	MaxContentSize int           // Characters; bounds the WebSocket read limit
	WriteTimeout   time.Duration // Per-frame write deadline
	AllowedOrigins []string      // Empty allows any origin
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxContentSize: notes.DefaultMaxContentSize,
		WriteTimeout:   5 * time.Second,
	}
}

// Server serves the notes API and live channels.
type Server struct {
	cfg      Config
	store    notes.Store
	logger   *slog.Logger
	upgrader websocket.Upgrader
	conns    *registry
	now      func() time.Time
	mux      *http.ServeMux
}

// New creates a Server backed by store.
func New(cfg Config, store notes.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxContentSize <= 0 {
		cfg.MaxContentSize = notes.DefaultMaxContentSize
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultConfig().WriteTimeout
	}

	s := &Server{
		cfg:    cfg,
		store:  store,
		logger: logger,
		conns:  newRegistry(),
		now:    time.Now,
		mux:    http.NewServeMux(),
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: s.checkOrigin,
	}

	s.mux.HandleFunc("GET /api/notes/{id}", s.handleGetNote)
	s.mux.HandleFunc("POST /api/notes/{id}", s.handleSaveNote)
	s.mux.HandleFunc("GET /notepad/ws/{id}", s.handleWS)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Connections returns the number of open live channels.
func (s *Server) Connections() int {
	return s.conns.len()
}

// CloseConnections sends a going-away close to every live channel.
// http.Server.Shutdown does not track hijacked connections.
func (s *Server) CloseConnections() {
	s.conns.closeAll(websocket.CloseGoingAway, "server shutting down")
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.cfg.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range s.cfg.AllowedOrigins {
		if o == origin {
			return true
		}
	}
	return false
}

type pinger interface {
	Ping(ctx context.Context) error
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := struct {
		Status      string         `json:"status"`
		Connections int            `json:"connections"`
		Documents   int            `json:"documents"`
		Components  map[string]any `json:"components"`
	}{
		Status:      "healthy",
		Connections: s.conns.len(),
		Documents:   s.conns.documents(),
		Components:  make(map[string]any),
	}

	if p, ok := s.store.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["storage"] = map[string]string{
				"status": "disconnected",
				"error":  err.Error(),
			}
		} else {
			health.Components["storage"] = "connected"
		}
	} else {
		health.Components["storage"] = "ok"
	}

	code := http.StatusOK
	if health.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, health)
}

// errorBody is the JSON body of a failed API request.
type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorBody{Detail: msg})
}

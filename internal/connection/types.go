package connection

import (
	"errors"
	"time"
)

// Errors
var (
	ErrNotConnected    = errors.New("not connected")
	ErrStaleConnection = errors.New("connection stale (no ping)")
	ErrAlreadyClosed   = errors.New("already closed")
	ErrEmptyDocID      = errors.New("empty document id")
)

// TimestampedMessage wraps raw message data with receive timestamp.
type TimestampedMessage struct {
	Data       []byte    // Raw message bytes from WebSocket
	ReceivedAt time.Time // Local timestamp when ReadMessage() returned
}

// ClientConfig configures a WebSocket client.
type ClientConfig struct {
	URL              string        // WebSocket URL (e.g., wss://notes.example.com/notepad/ws/todo)
	UserAgent        string        // Sent on the handshake; empty for none
	HandshakeTimeout time.Duration // Dial deadline
	PingInterval     time.Duration // How often we ping the server
	PingTimeout      time.Duration // Max time without ping/pong before considering connection stale
	WriteTimeout     time.Duration // Write deadline for sends
	BufferSize       int           // Message channel buffer size
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		HandshakeTimeout: 10 * time.Second,
		PingInterval:     30 * time.Second,
		PingTimeout:      60 * time.Second,
		WriteTimeout:     5 * time.Second,
		BufferSize:       64, // One frame per save, acknowledgements are small
	}
}

// ManagerConfig configures the Connection Manager.
type ManagerConfig struct {
	APIBaseURL           string        // REST base; decides ws vs wss and the default host
	PageURL              string        // Origin for a relative APIBaseURL
	WSHost               string        // Optional host[:port] override for the channel
	MaxReconnectAttempts int           // Reconnects after a close before giving up
	ReconnectDelay       time.Duration // Delay unit, multiplied by the attempt count
	PollInterval         time.Duration // Poll tick while degraded
	PollTimeout          time.Duration // Per-fetch timeout while polling
	Client               ClientConfig  // Per-channel settings; URL is filled per session
}

// DefaultManagerConfig returns sensible defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		APIBaseURL:           "/api",
		PageURL:              "http://localhost:5173",
		MaxReconnectAttempts: 5,
		ReconnectDelay:       1 * time.Second,
		PollInterval:         5 * time.Second,
		PollTimeout:          10 * time.Second,
		Client:               DefaultClientConfig(),
	}
}

// State is the manager's coarse connection state.
type State string

const (
	StateIdle       State = "idle"       // No target document
	StateConnecting State = "connecting" // Dial in progress
	StateOpen       State = "open"       // Channel usable for saves
	StateClosed     State = "closed"     // Channel lost; reconnect may be pending
	StatePolling    State = "polling"    // Degraded to REST polling + HTTP saves
)

// ManagerStats is a snapshot of the manager's session.
type ManagerStats struct {
	State            State
	Target           string // Document id of the current session
	Attempts         int    // Reconnect attempts since the last successful open
	Polling          bool
	PollingDoc       string // Document the poller fetches, "" when not polling
	ReconnectPending bool
}

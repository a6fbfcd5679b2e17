package model

import (
	"encoding/json"
	"time"
)

// -----------------------------------------------------------------------------
// Notes
// -----------------------------------------------------------------------------

// Note is a stored text document as returned by GET/POST /notes/{id}.
type Note struct {
	Filename  string `json:"filename"`   // Stored name, "<id>.txt"
	Content   string `json:"content"`    // Full text
	CreatedAt string `json:"created_at"` // ISO 8601
	UpdatedAt string `json:"updated_at"` // ISO 8601
	Size      int    `json:"size"`       // Content length in characters
}

// SaveRequest is the body of POST /notes/{id}.
type SaveRequest struct {
	Content string `json:"content"`
}

// -----------------------------------------------------------------------------
// WebSocket Frames
// -----------------------------------------------------------------------------

// Frame types.
const (
	TypeSave         = "save"
	TypeSaveResponse = "save_response"
	TypeError        = "error"
)

// StatusSuccess is the save_response status that marks a persisted save.
const StatusSuccess = "success"

// TimestampLayout matches JavaScript's Date.toISOString (UTC, milliseconds).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// SaveMessage is the outbound frame asking the server to persist content.
type SaveMessage struct {
	Type      string `json:"type"` // Always "save"
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"` // Send time, TimestampLayout
}

// NewSaveMessage builds a save frame stamped with t.
func NewSaveMessage(content string, t time.Time) SaveMessage {
	return SaveMessage{
		Type:      TypeSave,
		Content:   content,
		Timestamp: FormatTimestamp(t),
	}
}

// InboundMessage is any frame received from the server.
// Status and Timestamp are only set on save_response frames.
type InboundMessage struct {
	Type      string `json:"type"`              // "save_response", "error", or unknown
	Status    string `json:"status,omitempty"`  // "success" or anything else
	Message   string `json:"message,omitempty"` // Human-readable detail
	Timestamp string `json:"timestamp,omitempty"`
}

// UnmarshalJSON accepts any JSON value in each field. Strings decode as
// their text; other values keep their JSON form, so a numeric timestamp or
// a boolean status still produces a usable message. Only malformed JSON
// is an error.
func (m *InboundMessage) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type      json.RawMessage `json:"type"`
		Status    json.RawMessage `json:"status"`
		Message   json.RawMessage `json:"message"`
		Timestamp json.RawMessage `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = InboundMessage{
		Type:      rawText(raw.Type),
		Status:    rawText(raw.Status),
		Message:   rawText(raw.Message),
		Timestamp: rawText(raw.Timestamp),
	}
	return nil
}

func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Succeeded reports whether m is a successful save_response.
func (m InboundMessage) Succeeded() bool {
	return m.Type == TypeSaveResponse && m.Status == StatusSuccess
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

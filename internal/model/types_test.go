package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewSaveMessage(t *testing.T) {
	ts := time.Date(2024, 1, 15, 14, 30, 45, 123456789, time.FixedZone("EST", -5*3600))

	msg := NewSaveMessage("hello", ts)

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	want := `{"type":"save","content":"hello","timestamp":"2024-01-15T19:30:45.123Z"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestInboundMessage_Succeeded(t *testing.T) {
	tests := []struct {
		name string
		data string
		want bool
	}{
		{"success", `{"type":"save_response","status":"success","message":"ok","timestamp":"t"}`, true},
		{"failure status", `{"type":"save_response","status":"error","message":"disk full"}`, false},
		{"missing status", `{"type":"save_response"}`, false},
		{"error frame", `{"type":"error","message":"boom"}`, false},
		{"unknown type", `{"type":"presence","status":"success"}`, false},
		{"null timestamp", `{"type":"save_response","status":"success","timestamp":null}`, true},
		{"numeric timestamp", `{"type":"save_response","status":"success","timestamp":1700000000000}`, true},
		{"boolean status", `{"type":"save_response","status":false}`, false},
		{"object message", `{"type":"save_response","status":"success","message":{"code":1}}`, true},
		{"numeric type", `{"type":7,"status":"success"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var msg InboundMessage
			if err := json.Unmarshal([]byte(tt.data), &msg); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if got := msg.Succeeded(); got != tt.want {
				t.Errorf("Succeeded() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNote_JSON(t *testing.T) {
	data := `{"filename":"todo.txt","content":"milk","created_at":"2024-01-15T14:30:45.123456","updated_at":"2024-01-15T14:31:00","size":4}`

	var n Note
	if err := json.Unmarshal([]byte(data), &n); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if n.Filename != "todo.txt" {
		t.Errorf("Filename = %q, want %q", n.Filename, "todo.txt")
	}
	if n.Content != "milk" {
		t.Errorf("Content = %q, want %q", n.Content, "milk")
	}
	if n.CreatedAt != "2024-01-15T14:30:45.123456" {
		t.Errorf("CreatedAt = %q, want passthrough", n.CreatedAt)
	}
	if n.Size != 4 {
		t.Errorf("Size = %d, want 4", n.Size)
	}
}

func TestInboundMessage_UnmarshalJSON(t *testing.T) {
	var msg InboundMessage
	data := `{"type":"save_response","status":false,"message":"ok","timestamp":1700000000000}`
	if err := json.Unmarshal([]byte(data), &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	want := InboundMessage{Type: TypeSaveResponse, Status: "false", Message: "ok", Timestamp: "1700000000000"}
	if msg != want {
		t.Errorf("msg = %+v, want %+v", msg, want)
	}

	for _, bad := range []string{`not json`, `{"type":`, `[1,2]`} {
		if err := json.Unmarshal([]byte(bad), &msg); err == nil {
			t.Errorf("unmarshal %q: expected error", bad)
		}
	}
}

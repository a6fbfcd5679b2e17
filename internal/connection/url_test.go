package connection

import (
	"errors"
	"testing"
)

func TestBuildWSURL(t *testing.T) {
	tests := []struct {
		name    string
		apiBase string
		pageURL string
		wsHost  string
		docID   string
		want    string
	}{
		{
			name:    "relative base uses page host",
			apiBase: "/api",
			pageURL: "http://localhost:5173/notes/todo",
			docID:   "todo",
			want:    "ws://localhost:5173/notepad/ws/todo",
		},
		{
			name:    "relative base on https page",
			apiBase: "/api",
			pageURL: "https://notes.example.com/",
			docID:   "todo",
			want:    "wss://notes.example.com/notepad/ws/todo",
		},
		{
			name:    "absolute base host wins over page",
			apiBase: "http://127.0.0.1:8000/api",
			pageURL: "http://localhost:5173",
			docID:   "todo",
			want:    "ws://127.0.0.1:8000/notepad/ws/todo",
		},
		{
			name:    "https base",
			apiBase: "https://api.example.com/api",
			docID:   "todo",
			want:    "wss://api.example.com/notepad/ws/todo",
		},
		{
			name:    "https page upgrades http base",
			apiBase: "http://api.example.com/api",
			pageURL: "https://notes.example.com",
			docID:   "todo",
			want:    "wss://api.example.com/notepad/ws/todo",
		},
		{
			name:    "ws host override",
			apiBase: "https://api.example.com/api",
			wsHost:  "ws.example.com:9000",
			docID:   "todo",
			want:    "wss://ws.example.com:9000/notepad/ws/todo",
		},
		{
			name:    "id is escaped",
			apiBase: "http://localhost:8000/api",
			docID:   "my notes",
			want:    "ws://localhost:8000/notepad/ws/my%20notes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildWSURL(tt.apiBase, tt.pageURL, tt.wsHost, tt.docID)
			if err != nil {
				t.Fatalf("BuildWSURL failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("BuildWSURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildWSURL_Errors(t *testing.T) {
	if _, err := BuildWSURL("/api", "http://localhost:5173", "", ""); !errors.Is(err, ErrEmptyDocID) {
		t.Errorf("expected ErrEmptyDocID, got %v", err)
	}

	if _, err := BuildWSURL("/api", "", "", "todo"); err == nil {
		t.Error("expected error for relative base without page url")
	}

	if _, err := BuildWSURL("http://[::1", "", "", "todo"); err == nil {
		t.Error("expected error for unparseable base")
	}
}

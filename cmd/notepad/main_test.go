package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/rickgao/notepad-sync/internal/config"
	"github.com/rickgao/notepad-sync/internal/status"
)

func TestStatusPrinter(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	var buf bytes.Buffer
	onChange := statusPrinter(&buf)

	at := time.Date(2026, 3, 1, 9, 30, 15, 0, time.Local)
	onChange(status.Snapshot{CurrentFile: "todo", SaveStatus: status.Saved})
	onChange(status.Snapshot{CurrentFile: "todo", SaveStatus: status.Saving})
	onChange(status.Snapshot{CurrentFile: "todo", SaveStatus: status.Saving})
	onChange(status.Snapshot{CurrentFile: "todo", SaveStatus: status.Saved, LastSaved: at})
	onChange(status.Snapshot{CurrentFile: "todo", SaveStatus: status.Error})

	want := "[todo] saving\n[todo] saved at 09:30:15\n[todo] error\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestManagerConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Sync.WSHost = "ws.example.com"
	cfg.Sync.MaxReconnectAttempts = 2

	mc := managerConfig(cfg)
	if mc.APIBaseURL != "/api" || mc.PageURL != "http://localhost:5173" {
		t.Errorf("urls = %q %q", mc.APIBaseURL, mc.PageURL)
	}
	if mc.WSHost != "ws.example.com" {
		t.Errorf("WSHost = %q", mc.WSHost)
	}
	if mc.MaxReconnectAttempts != 2 {
		t.Errorf("MaxReconnectAttempts = %d, want 2", mc.MaxReconnectAttempts)
	}
	if mc.PollInterval != 5*time.Second {
		t.Errorf("PollInterval = %v, want 5s", mc.PollInterval)
	}
}

func TestReadLines(t *testing.T) {
	out := make(chan string, 4)
	readLines(strings.NewReader("one\ntwo\n"), out)

	var got []string
	for line := range out {
		got = append(got, line)
	}
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("lines = %v", got)
	}
}

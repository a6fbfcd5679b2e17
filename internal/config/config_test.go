package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
api:
  base_url: https://notes.example.com/api
  token: abc
  timeout: 3s
sync:
  ws_host: ws.example.com:9000
  reconnect_delay: 250ms
server:
  storage: memory
log:
  level: debug
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.BaseURL != "https://notes.example.com/api" {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, "https://notes.example.com/api")
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("API.Timeout = %v, want %v", cfg.API.Timeout, 3*time.Second)
	}
	if cfg.Sync.WSHost != "ws.example.com:9000" {
		t.Errorf("Sync.WSHost = %q, want %q", cfg.Sync.WSHost, "ws.example.com:9000")
	}
	if cfg.Sync.ReconnectDelay != 250*time.Millisecond {
		t.Errorf("Sync.ReconnectDelay = %v, want %v", cfg.Sync.ReconnectDelay, 250*time.Millisecond)
	}
	if cfg.Server.Storage != StorageMemory {
		t.Errorf("Server.Storage = %q, want %q", cfg.Server.Storage, StorageMemory)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_NOTEPAD_TOKEN", "secret123")

	yaml := `
api:
  token: ${TEST_NOTEPAD_TOKEN}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.Token != "secret123" {
		t.Errorf("API.Token = %q, want %q", cfg.API.Token, "secret123")
	}
}

func TestLoadWithDotEnv(t *testing.T) {
	const key = "TEST_NOTEPAD_DOTENV_PASSWORD"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := writeTempFile(t, `
database:
  password: ${TEST_NOTEPAD_DOTENV_PASSWORD}
`)
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := os.WriteFile(envPath, []byte(key+"=from-dotenv\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Password != "from-dotenv" {
		t.Errorf("Database.Password = %q, want %q", cfg.Database.Password, "from-dotenv")
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	t.Setenv("TEST_NOTEPAD_PRECEDENCE", "from-process")

	path := writeTempFile(t, `
api:
  token: ${TEST_NOTEPAD_PRECEDENCE}
`)
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := os.WriteFile(envPath, []byte("TEST_NOTEPAD_PRECEDENCE=from-dotenv\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.Token != "from-process" {
		t.Errorf("API.Token = %q, want %q", cfg.API.Token, "from-process")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "log:\n  format: json\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q, want default %q", cfg.API.BaseURL, DefaultBaseURL)
	}
	if cfg.Sync.MaxReconnectAttempts != DefaultMaxReconnectAttempts {
		t.Errorf("Sync.MaxReconnectAttempts = %d, want default %d", cfg.Sync.MaxReconnectAttempts, DefaultMaxReconnectAttempts)
	}
	if cfg.Sync.ReconnectDelay != DefaultReconnectDelay {
		t.Errorf("Sync.ReconnectDelay = %v, want default %v", cfg.Sync.ReconnectDelay, DefaultReconnectDelay)
	}
	if cfg.Sync.PollInterval != DefaultPollInterval {
		t.Errorf("Sync.PollInterval = %v, want default %v", cfg.Sync.PollInterval, DefaultPollInterval)
	}
	if cfg.Server.MaxContentSize != DefaultMaxContentSize {
		t.Errorf("Server.MaxContentSize = %d, want default %d", cfg.Server.MaxContentSize, DefaultMaxContentSize)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want %q (explicit value kept)", cfg.Log.Format, "json")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return *Default()
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "defaults",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name: "relative base without page url",
			mutate: func(c *Config) {
				c.API.PageURL = "localhost"
			},
			wantErr: "api.page_url must be an absolute URL when api.base_url is relative",
		},
		{
			name: "absolute base ignores page url",
			mutate: func(c *Config) {
				c.API.BaseURL = "https://notes.example.com/api"
				c.API.PageURL = "localhost"
			},
			wantErr: "",
		},
		{
			name: "zero poll interval",
			mutate: func(c *Config) {
				c.Sync.PollInterval = -time.Second
			},
			wantErr: "sync.poll_interval must be > 0",
		},
		{
			name: "unknown storage",
			mutate: func(c *Config) {
				c.Server.Storage = "s3"
			},
			wantErr: `server.storage must be one of file, memory, postgres, got "s3"`,
		},
		{
			name: "postgres requires host",
			mutate: func(c *Config) {
				c.Server.Storage = StoragePostgres
			},
			wantErr: "database.host is required",
		},
		{
			name: "min_conns exceeds max_conns",
			mutate: func(c *Config) {
				c.Server.Storage = StoragePostgres
				c.Database = DBConfig{Host: "localhost", Name: "db", User: "user", Password: "pass", MaxConns: 5, MinConns: 10}
			},
			wantErr: "database.min_conns (10) cannot exceed max_conns (5)",
		},
		{
			name: "negative cache ttl",
			mutate: func(c *Config) {
				c.Server.CacheTTL = -time.Second
			},
			wantErr: "server.cache_ttl must be >= 0",
		},
		{
			name: "bad log level",
			mutate: func(c *Config) {
				c.Log.Level = "loud"
			},
			wantErr: `log.level "loud" is invalid`,
		},
		{
			name: "bad log format",
			mutate: func(c *Config) {
				c.Log.Format = "xml"
			},
			wantErr: `log.format must be text or json, got "xml"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL              = "/api"
	DefaultPageURL              = "http://localhost:5173"
	DefaultAPITimeout           = 10 * time.Second
	DefaultMaxRetries           = 3
	DefaultMaxReconnectAttempts = 5
	DefaultReconnectDelay       = 1 * time.Second
	DefaultPollInterval         = 5 * time.Second
	DefaultWriteTimeout         = 5 * time.Second
	DefaultPingTimeout          = 60 * time.Second
	DefaultListenAddr           = ":8000"
	DefaultStorage              = StorageFile
	DefaultNotesDir             = "./data"
	DefaultMaxContentSize       = 100000
	DefaultDBPort               = 5432
	DefaultDBSSLMode            = "prefer"
	DefaultMaxConns             = 10
	DefaultMinConns             = 2
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "text"
)

// Storage backends for the reference server.
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.PageURL == "" {
		c.API.PageURL = DefaultPageURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}

	// Sync defaults
	if c.Sync.MaxReconnectAttempts == 0 {
		c.Sync.MaxReconnectAttempts = DefaultMaxReconnectAttempts
	}
	if c.Sync.ReconnectDelay == 0 {
		c.Sync.ReconnectDelay = DefaultReconnectDelay
	}
	if c.Sync.PollInterval == 0 {
		c.Sync.PollInterval = DefaultPollInterval
	}
	if c.Sync.WriteTimeout == 0 {
		c.Sync.WriteTimeout = DefaultWriteTimeout
	}
	if c.Sync.PingTimeout == 0 {
		c.Sync.PingTimeout = DefaultPingTimeout
	}

	// Server defaults
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
	if c.Server.Storage == "" {
		c.Server.Storage = DefaultStorage
	}
	if c.Server.NotesDir == "" {
		c.Server.NotesDir = DefaultNotesDir
	}
	if c.Server.MaxContentSize == 0 {
		c.Server.MaxContentSize = DefaultMaxContentSize
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

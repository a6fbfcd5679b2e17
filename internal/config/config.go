package config

import "time"

// Config is the root configuration.
type Config struct {
	API      APIConfig    `yaml:"api"`
	Sync     SyncConfig   `yaml:"sync"`
	Server   ServerConfig `yaml:"server"`
	Database DBConfig     `yaml:"database"`
	Log      LogConfig    `yaml:"log"`
}

// APIConfig holds notepad REST API settings.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"` // Absolute ("https://host/api") or page-relative ("/api")
	PageURL    string        `yaml:"page_url"` // Origin that relative URLs resolve against
	Token      string        `yaml:"token"`    // Bearer token, empty for none
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"` // Reads only; saves never retry
}

// SyncConfig holds connection manager settings.
type SyncConfig struct {
	WSHost               string        `yaml:"ws_host"` // Optional host[:port] override for the live channel
	MaxReconnectAttempts int           `yaml:"max_reconnect_attempts"`
	ReconnectDelay       time.Duration `yaml:"reconnect_delay"` // Multiplied by the attempt count
	PollInterval         time.Duration `yaml:"poll_interval"`
	WriteTimeout         time.Duration `yaml:"write_timeout"`
	PingTimeout          time.Duration `yaml:"ping_timeout"`
}

// ServerConfig holds reference backend settings.
type ServerConfig struct {
	ListenAddr     string        `yaml:"listen_addr"`
	Storage        string        `yaml:"storage"` // "file", "memory", or "postgres"
	NotesDir       string        `yaml:"notes_dir"`
	MaxContentSize int           `yaml:"max_content_size"` // Characters
	AllowedOrigins []string      `yaml:"allowed_origins"`  // WebSocket origins; empty allows any
	CacheTTL       time.Duration `yaml:"cache_ttl"`        // Read cache lifetime; zero disables
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

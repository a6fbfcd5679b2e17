package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	base, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url is invalid: %w", err)
	}
	if !base.IsAbs() {
		page, err := url.Parse(c.API.PageURL)
		if err != nil || !page.IsAbs() || page.Host == "" {
			return errors.New("api.page_url must be an absolute URL when api.base_url is relative")
		}
	}
	if c.API.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}

	if c.Sync.MaxReconnectAttempts < 0 {
		return errors.New("sync.max_reconnect_attempts must be >= 0")
	}
	if c.Sync.ReconnectDelay < 0 {
		return errors.New("sync.reconnect_delay must be >= 0")
	}
	if c.Sync.PollInterval <= 0 {
		return errors.New("sync.poll_interval must be > 0")
	}

	switch c.Server.Storage {
	case StorageFile:
		if c.Server.NotesDir == "" {
			return errors.New("server.notes_dir is required for file storage")
		}
	case StorageMemory:
	case StoragePostgres:
		if err := c.Database.validate("database"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("server.storage must be one of file, memory, postgres, got %q", c.Server.Storage)
	}
	if c.Server.MaxContentSize < 1 {
		return errors.New("server.max_content_size must be >= 1")
	}
	if c.Server.CacheTTL < 0 {
		return errors.New("server.cache_ttl must be >= 0")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level %q is invalid", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}

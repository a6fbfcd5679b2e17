package database

import (
	"fmt"
	"net/url"

	"github.com/rickgao/notepad-sync/internal/config"
)

// applicationName tags server-side sessions in pg_stat_activity.
const applicationName = "notepad-sync"

// BuildConnString builds a PostgreSQL connection string from config.
func BuildConnString(cfg config.DBConfig) string {
	// URL-encode password to handle special characters
	escapedPassword := url.QueryEscape(cfg.Password)

	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&application_name=%s",
		url.QueryEscape(cfg.User),
		escapedPassword,
		cfg.Host,
		cfg.Port,
		cfg.Name,
		sslMode,
		applicationName,
	)
}

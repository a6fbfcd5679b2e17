// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// A .env file next to the config file, if present, is loaded first; variables
// already set in the process environment win over .env entries.
//
// The same file configures both binaries: notepad reads api, sync and log;
// notepadd reads server, database and log.
package config

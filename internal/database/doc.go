// Package database provides the PostgreSQL connection pool behind the
// postgres note store.
package database

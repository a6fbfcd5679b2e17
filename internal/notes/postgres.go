package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rickgao/notepad-sync/internal/model"
)

// Querier is the subset of *pgxpool.Pool the postgres store uses.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS notes (
		filename   TEXT PRIMARY KEY,
		content    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// PostgresStore keeps notes in the notes table.
type PostgresStore struct {
	db      Querier
	maxSize int
}

// NewPostgresStore wraps db. maxSize <= 0 selects DefaultMaxContentSize.
func NewPostgresStore(db Querier, maxSize int) *PostgresStore {
	return &PostgresStore{db: db, maxSize: maxOrDefault(maxSize)}
}

// EnsureSchema creates the notes table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create notes table: %w", err)
	}
	return nil
}

// Get loads the note for id.
func (s *PostgresStore) Get(ctx context.Context, id string) (*model.Note, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	var content string
	var created, updated time.Time
	err := s.db.QueryRow(ctx, `
		SELECT content, created_at, updated_at
		FROM notes
		WHERE filename = $1
	`, FileName(id)).Scan(&content, &created, &updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get note %s: %w", id, err)
	}
	return newNote(id, content, created, updated), nil
}

// Put upserts the note for id.
func (s *PostgresStore) Put(ctx context.Context, id, content string) (*model.Note, error) {
	if err := checkPut(id, content, s.maxSize); err != nil {
		return nil, err
	}

	var created, updated time.Time
	err := s.db.QueryRow(ctx, `
		INSERT INTO notes (filename, content)
		VALUES ($1, $2)
		ON CONFLICT (filename) DO UPDATE
		SET content = EXCLUDED.content, updated_at = now()
		RETURNING created_at, updated_at
	`, FileName(id), content).Scan(&created, &updated)
	if err != nil {
		return nil, fmt.Errorf("put note %s: %w", id, err)
	}
	return newNote(id, content, created, updated), nil
}

// Delete removes the note for id.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM notes WHERE filename = $1`, FileName(id)); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return nil
}

// Exists reports whether id has a row.
func (s *PostgresStore) Exists(ctx context.Context, id string) (bool, error) {
	if err := ValidateID(id); err != nil {
		return false, nil
	}
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM notes WHERE filename = $1)`,
		FileName(id),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check note %s: %w", id, err)
	}
	return exists, nil
}

// Ping checks the database when the underlying Querier supports it.
func (s *PostgresStore) Ping(ctx context.Context) error {
	p, ok := s.db.(interface{ Ping(context.Context) error })
	if !ok {
		return nil
	}
	return p.Ping(ctx)
}

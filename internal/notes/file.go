package notes

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/rickgao/notepad-sync/internal/model"
)

// FileStore keeps each note in "<dir>/<id>.txt".
type FileStore struct {
	dir     string
	maxSize int
}

// NewFileStore creates dir if needed. maxSize <= 0 selects
// DefaultMaxContentSize.
func NewFileStore(dir string, maxSize int) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create notes dir: %w", err)
	}
	return &FileStore{dir: dir, maxSize: maxOrDefault(maxSize)}, nil
}

// Dir returns the notes directory.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, FileName(id))
}

// Get reads the note for id.
func (s *FileStore) Get(ctx context.Context, id string) (*model.Note, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	path := s.path(id)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read note %s: %w", id, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("read note %s: not a valid text file", id)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat note %s: %w", id, err)
	}
	// Creation time is not portable; both stamps use the modification time.
	return newNote(id, string(data), info.ModTime(), info.ModTime()), nil
}

// Put writes content to a temp file and renames it over the note.
func (s *FileStore) Put(ctx context.Context, id, content string) (*model.Note, error) {
	if err := checkPut(id, content, s.maxSize); err != nil {
		return nil, err
	}

	path := s.path(id)
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("write note %s: %w", id, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return nil, fmt.Errorf("write note %s: %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("write note %s: %w", id, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("write note %s: %w", id, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat note %s: %w", id, err)
	}
	return newNote(id, content, info.ModTime(), info.ModTime()), nil
}

// Delete removes the note file.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if err := os.Remove(s.path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return nil
}

// Exists reports whether the note file exists.
func (s *FileStore) Exists(ctx context.Context, id string) (bool, error) {
	if err := ValidateID(id); err != nil {
		return false, nil
	}
	info, err := os.Stat(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat note %s: %w", id, err)
	}
	return info.Mode().IsRegular(), nil
}

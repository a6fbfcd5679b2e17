package notes

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rickgao/notepad-sync/internal/model"
)

// DefaultMaxContentSize is the largest note accepted, in characters.
const DefaultMaxContentSize = 100000

// Store persists notes by id.
type Store interface {
	// Get returns the note, or ErrNotFound.
	Get(ctx context.Context, id string) (*model.Note, error)

	// Put creates or replaces the note's content.
	Put(ctx context.Context, id, content string) (*model.Note, error)

	// Delete removes the note. Deleting a missing note is not an error.
	Delete(ctx context.Context, id string) error

	// Exists reports whether the note is stored.
	Exists(ctx context.Context, id string) (bool, error)
}

// checkPut validates a write before it reaches storage.
func checkPut(id, content string, maxSize int) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if n := utf8.RuneCountInString(content); n > maxSize {
		return fmt.Errorf("%w: %d characters, max %d", ErrTooLarge, n, maxSize)
	}
	return nil
}

func newNote(id, content string, created, updated time.Time) *model.Note {
	return &model.Note{
		Filename:  FileName(id),
		Content:   content,
		CreatedAt: model.FormatTimestamp(created),
		UpdatedAt: model.FormatTimestamp(updated),
		Size:      utf8.RuneCountInString(content),
	}
}

// Empty returns the placeholder served for an id that has never been saved.
func Empty(id string, now time.Time) *model.Note {
	return newNote(id, "", now, now)
}

func maxOrDefault(maxSize int) int {
	if maxSize <= 0 {
		return DefaultMaxContentSize
	}
	return maxSize
}

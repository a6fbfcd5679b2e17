package notes

import (
	"context"
	"sync"
	"time"

	"github.com/rickgao/notepad-sync/internal/model"
)

type memoryEntry struct {
	content string
	created time.Time
	updated time.Time
}

// MemoryStore keeps notes in a map.
type MemoryStore struct {
	maxSize int
	now     func() time.Time

	mu    sync.RWMutex
	notes map[string]memoryEntry
}

// NewMemoryStore creates an empty MemoryStore. maxSize <= 0 selects
// DefaultMaxContentSize.
func NewMemoryStore(maxSize int) *MemoryStore {
	return &MemoryStore{
		maxSize: maxOrDefault(maxSize),
		now:     time.Now,
		notes:   make(map[string]memoryEntry),
	}
}

// Get returns the note for id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*model.Note, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	e, ok := s.notes[FileName(id)]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return newNote(id, e.content, e.created, e.updated), nil
}

// Put stores content under id.
func (s *MemoryStore) Put(ctx context.Context, id, content string) (*model.Note, error) {
	if err := checkPut(id, content, s.maxSize); err != nil {
		return nil, err
	}

	now := s.now()
	key := FileName(id)

	s.mu.Lock()
	e, ok := s.notes[key]
	if !ok {
		e.created = now
	}
	e.content = content
	e.updated = now
	s.notes[key] = e
	s.mu.Unlock()

	return newNote(id, e.content, e.created, e.updated), nil
}

// Delete removes id.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.notes, FileName(id))
	s.mu.Unlock()
	return nil
}

// Exists reports whether id is stored.
func (s *MemoryStore) Exists(ctx context.Context, id string) (bool, error) {
	if err := ValidateID(id); err != nil {
		return false, nil
	}

	s.mu.RLock()
	_, ok := s.notes[FileName(id)]
	s.mu.RUnlock()
	return ok, nil
}

// Len returns the number of stored notes.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

package status

import (
	"sync"
	"time"
)

// SaveStatus is the tri-state save feedback shown to the user.
type SaveStatus string

const (
	Saved  SaveStatus = "saved"
	Saving SaveStatus = "saving"
	Error  SaveStatus = "error"
)

// Snapshot is a point-in-time copy of the store.
type Snapshot struct {
	CurrentFile string
	Content     string
	SaveStatus  SaveStatus
	LastSaved   time.Time // Zero until the first transition into Saved
	Loading     bool
}

// Store is a passive, observable state container. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state Snapshot
	now   func() time.Time

	notifyMu sync.Mutex // Serializes mutate+notify so snapshots arrive in order
	subsMu   sync.Mutex
	subs     map[int]func(Snapshot)
	nextID   int
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to stamp LastSaved.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store in the Saved state with no document.
func NewStore(opts ...Option) *Store {
	s := &Store{
		state: Snapshot{SaveStatus: Saved},
		now:   time.Now,
		subs:  make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentFile returns the open document id.
func (s *Store) CurrentFile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentFile
}

// Content returns the current document content.
func (s *Store) Content() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Content
}

// SaveStatus returns the current save status.
func (s *Store) SaveStatus() SaveStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.SaveStatus
}

// LastSaved returns when the status last became Saved.
func (s *Store) LastSaved() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.LastSaved
}

// Loading reports whether a document load is in progress.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Loading
}

// SetContent replaces the document content.
func (s *Store) SetContent(content string) {
	s.update(func(st *Snapshot) {
		st.Content = content
	})
}

// SetSaveStatus sets the save status. Entering Saved stamps LastSaved with
// the time of this call.
func (s *Store) SetSaveStatus(status SaveStatus) {
	s.update(func(st *Snapshot) {
		st.SaveStatus = status
		if status == Saved {
			st.LastSaved = s.now()
		}
	})
}

// SetLoading sets the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.update(func(st *Snapshot) {
		st.Loading = loading
	})
}

// SetCurrentFile sets the open document id.
func (s *Store) SetCurrentFile(docID string) {
	s.update(func(st *Snapshot) {
		st.CurrentFile = docID
	})
}

// Subscribe registers fn to receive a snapshot after every mutation.
// Callbacks run synchronously on the mutating goroutine, one mutation at a
// time and in mutation order. They may read the store but must not mutate it.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *Store) update(mutate func(*Snapshot)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	mutate(&s.state)
	snap := s.state
	s.mu.Unlock()

	s.subsMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

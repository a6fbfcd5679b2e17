package notes

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/rickgao/notepad-sync/internal/model"
)

// CachedStore serves repeated reads from memory. Polling clients re-fetch
// every few seconds, so reads dominate. Writes and deletes go through this
// store and keep the cache current; writes that bypass it are seen once
// the TTL expires.
type CachedStore struct {
	inner Store
	cache *cache.Cache
}

// NewCachedStore wraps inner with a read cache holding notes for ttl.
func NewCachedStore(inner Store, ttl time.Duration) *CachedStore {
	return &CachedStore{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Get returns the cached note, loading it from the inner store on a miss.
func (s *CachedStore) Get(ctx context.Context, id string) (*model.Note, error) {
	key := FileName(id)
	if x, found := s.cache.Get(key); found {
		note := *x.(*model.Note)
		return &note, nil
	}

	note, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.remember(key, note)
	return note, nil
}

// Put writes through to the inner store.
func (s *CachedStore) Put(ctx context.Context, id, content string) (*model.Note, error) {
	note, err := s.inner.Put(ctx, id, content)
	if err != nil {
		return nil, err
	}
	s.remember(FileName(id), note)
	return note, nil
}

// Delete removes the note from both layers.
func (s *CachedStore) Delete(ctx context.Context, id string) error {
	s.cache.Delete(FileName(id))
	return s.inner.Delete(ctx, id)
}

// Exists answers from the cache when it can.
func (s *CachedStore) Exists(ctx context.Context, id string) (bool, error) {
	if _, found := s.cache.Get(FileName(id)); found {
		return true, nil
	}
	return s.inner.Exists(ctx, id)
}

// Ping forwards to the inner store when it supports health checks.
func (s *CachedStore) Ping(ctx context.Context) error {
	if p, ok := s.inner.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *CachedStore) remember(key string, note *model.Note) {
	cp := *note
	s.cache.Set(key, &cp, cache.DefaultExpiration)
}

package profile

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Source loads a profile by id. *Loader is the usual implementation; tests
// inject fakes.
type Source interface {
	Load(id string) (*Profile, error)
}

// Store caches loaded profiles by id. Cached profiles are shared and must be
// treated as immutable by callers.
//
// Concurrency contract: Get is safe for concurrent use. Concurrent first
// loads of the same id collapse into a single underlying Load. Failed loads
// are not cached, so a later Get retries after the file is fixed.
type Store struct {
	src   Source
	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]*Profile
}

// NewStore creates an empty store backed by src.
func NewStore(src Source) *Store {
	return &Store{
		src:   src,
		cache: make(map[string]*Profile),
	}
}

// Get returns the cached profile for id, loading it on first use.
func (s *Store) Get(id string) (*Profile, error) {
	s.mu.RLock()
	p, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return p, nil
	}

	v, err, _ := s.group.Do(id, func() (any, error) {
		// A concurrent flight may have populated the cache already.
		s.mu.RLock()
		p, ok := s.cache[id]
		s.mu.RUnlock()
		if ok {
			return p, nil
		}

		loaded, err := s.src.Load(id)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.cache[id] = loaded
		s.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Profile), nil
}

// Invalidate drops the cached entry for id, if any.
func (s *Store) Invalidate(id string) {
	s.mu.Lock()
	delete(s.cache, id)
	s.mu.Unlock()
}

// Reset drops every cached entry.
func (s *Store) Reset() {
	s.mu.Lock()
	s.cache = make(map[string]*Profile)
	s.mu.Unlock()
}

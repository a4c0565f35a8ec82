package session

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	data    []byte
	expires time.Time
}

// MemoryStore keeps sessions in process. Entries expire after ttl of
// inactivity; a zero ttl never expires.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]memEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memEntry),
	}
}

func (s *MemoryStore) Get(_ context.Context, token string) (Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(token)
	if !ok {
		return Tournament{}, ErrNotFound
	}
	return decode(e.data)
}

func (s *MemoryStore) Put(_ context.Context, token string, t Tournament) error {
	data, err := encode(t)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.store(token, data)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Update(_ context.Context, token string, fn func(*Tournament) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(token)
	if !ok {
		return ErrNotFound
	}
	t, err := decode(e.data)
	if err != nil {
		return err
	}
	if err := fn(&t); err != nil {
		return err
	}
	data, err := encode(t)
	if err != nil {
		return err
	}
	s.store(token, data)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(token); !ok {
		return ErrNotFound
	}
	delete(s.entries, token)
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for token, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, token)
			n++
		}
	}
	return n
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// lookup must be called with mu held.
func (s *MemoryStore) lookup(token string) (memEntry, bool) {
	e, ok := s.entries[token]
	if !ok {
		return memEntry{}, false
	}
	if s.expired(e) {
		delete(s.entries, token)
		return memEntry{}, false
	}
	return e, true
}

func (s *MemoryStore) store(token string, data []byte) {
	e := memEntry{data: data}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.entries[token] = e
}

func (s *MemoryStore) expired(e memEntry) bool {
	return !e.expires.IsZero() && !s.now().Before(e.expires)
}

package ratelimit

import (
	"sync"
	"time"
)

// MemoryStore is an in-process counter store, used in tests and as a
// fallback when no database is wired in.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	counter   Counter
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Get(key string) (*Counter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok || s.now().After(entry.expiresAt) {
		return nil, nil
	}
	counter := entry.counter
	return &counter, nil
}

// Incr holds the lock across the whole read-modify-write, so concurrent
// increments on one key serialize instead of clobbering each other.
func (s *MemoryStore) Incr(key string, now time.Time, window time.Duration) (*Counter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || now.After(entry.counter.WindowStart.Add(window)) {
		entry = memoryEntry{counter: Counter{WindowStart: now}}
	}
	entry.counter.Count++
	entry.expiresAt = entry.counter.WindowStart.Add(window)
	s.entries[key] = entry

	counter := entry.counter
	return &counter, nil
}

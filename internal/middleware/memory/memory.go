// Package memory is an in-memory implementation of cache storage.
package memory

import (
	"sync"
	"time"
)

type entry struct {
	content   []byte
	expiresAt time.Time
}

// Storage is an in-memory cache with per-key TTL.
type Storage struct {
	mu sync.Mutex
	m  map[string]entry
}

// NewStorage ...
func NewStorage() *Storage {
	return &Storage{
		m: make(map[string]entry),
	}
}

// Get returns cached content or nil when the key is absent or expired.
func (s *Storage) Get(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[key]
	if !ok {
		return nil
	}

	if time.Now().After(e.expiresAt) {
		delete(s.m, key)
		return nil
	}

	return e.content
}

// Set stores content for the given duration.
func (s *Storage) Set(key string, content []byte, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[key] = entry{
		content:   content,
		expiresAt: time.Now().Add(duration),
	}
}

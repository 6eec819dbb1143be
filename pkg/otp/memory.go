package otp

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	code      string
	attempts  int
	expiresAt time.Time
}

// MemoryStore is a mutex-guarded map with per-entry expiry. Single-instance
// deployments and tests only.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Put(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = memoryEntry{code: code, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, email string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[email]
	if !ok {
		return Entry{}, ErrNotFound
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, email)
		return Entry{}, ErrNotFound
	}
	return Entry{Code: e.code, Attempts: e.attempts}, nil
}

func (s *MemoryStore) RecordFailure(_ context.Context, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[email]
	if !ok {
		return 0, ErrNotFound
	}
	e.attempts++
	s.entries[email] = e
	return e.attempts, nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}

package ratelimit

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = time.Minute

type memoryEntry struct {
	count     int64
	expiresAt time.Time
}

// MemoryStore keeps counters in process memory. It is meant for a single
// instance or for running without Redis.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]*memoryEntry
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Increment(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	e, ok := s.entries[key]
	if !ok || !now.Before(e.expiresAt) {
		e = &memoryEntry{expiresAt: now.Add(ttl)}
		s.entries[key] = e
	}
	e.count++

	return e.count, nil
}

func (s *MemoryStore) Decrement(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok && e.count > 0 {
		e.count--
	}
	return nil
}

// Len reports the number of live counters.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	s.lastSweep = now

	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}

// Package ratelimit gates submissions per client key over a fixed window
// held in process memory. State does not survive a restart; multi-instance
// deployments need a shared Store implementation instead.
package ratelimit

import (
	"sync"
	"time"
)

// Store decides whether a request from the given client key is admitted.
// Each call both checks and counts: an admitted request consumes one slot
// in the client's current window.
type Store interface {
	Allow(key string) bool
}

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryStore is a mutex-guarded in-memory Store. All concurrent requests
// share one map; the lock makes each check-and-increment atomic per key so
// two racing requests cannot both be admitted as the last slot.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   int
	window  time.Duration
	now     func() time.Time
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithClock overrides the time source, used by tests to step through
// window expiry deterministically.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore creates a store admitting limit requests per key per window.
func NewMemoryStore(limit int, window time.Duration, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*entry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow admits the request if the key has used fewer than limit slots in
// its current window. A lapsed window is discarded before counting, so
// admission resumes exactly at expiry.
func (s *MemoryStore) Allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || !now.Before(e.resetAt) {
		s.entries[key] = &entry{count: 1, resetAt: now.Add(s.window)}
		return true
	}
	if e.count >= s.limit {
		return false
	}
	e.count++
	return true
}

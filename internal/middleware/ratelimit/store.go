package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store keeps one sliding-window limiter per partition key, with idle-entry
// cleanup. Safe for concurrent use.
type Store struct {
	mu           sync.Mutex
	entries      map[string]*storeEntry
	policy       Policy
	idleTTL      time.Duration
	cleanupEvery time.Duration
	now          func() time.Time
}

type storeEntry struct {
	win      *slidingWindow
	lastSeen time.Time
}

type StoreOption func(*Store)

func WithIdleTTL(d time.Duration) StoreOption {
	return func(s *Store) { s.idleTTL = d }
}

func WithCleanupEvery(d time.Duration) StoreOption {
	return func(s *Store) { s.cleanupEvery = d }
}

// withClock overrides the time source for tests.
func withClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(policy Policy, opts ...StoreOption) *Store {
	s := &Store{
		entries:      make(map[string]*storeEntry),
		policy:       policy,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow records one permit against the key's window and reports whether the
// request may proceed. The multiplier scales the permit limit and is fixed at
// the partition's first sighting (a role does not change mid-window).
func (s *Store) Allow(key string, multiplier int) bool {
	if multiplier < 1 {
		multiplier = 1
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok {
		ent = &storeEntry{win: newSlidingWindow(s.policy, multiplier)}
		s.entries[key] = ent
	}
	ent.lastSeen = now
	return ent.win.allow(now)
}

// Cleanup drops partitions not seen within the idle TTL.
func (s *Store) Cleanup() {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, key)
		}
	}
}

// StartJanitor cleans idle partitions periodically until ctx is cancelled.
func (s *Store) StartJanitor(ctx context.Context) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}

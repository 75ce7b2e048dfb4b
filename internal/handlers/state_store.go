package handlers

import (
	"sync"
	"time"
)

// OAuth state entries are valid for 10 minutes and single-use.
const stateExpiration = 10 * time.Minute

type stateEntry struct {
	redirect  string
	expiresAt time.Time
}

type stateStore struct {
	mu      sync.Mutex
	entries map[string]stateEntry
}

var states = newStateStore()

func newStateStore() *stateStore {
	return &stateStore{entries: make(map[string]stateEntry)}
}

func (s *stateStore) Save(state, redirect string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[state] = stateEntry{redirect: redirect, expiresAt: time.Now().Add(stateExpiration)}
}

// Consume returns the redirect target for a state and deletes it, so a
// state can never be replayed.
func (s *stateStore) Consume(state string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[state]
	if !ok {
		return "", false
	}
	delete(s.entries, state)

	if time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.redirect, true
}

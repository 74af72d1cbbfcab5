// Package session tracks which service mode each user is currently in.
//
// The store is deliberately small: a mode is set when the user picks a
// menu option, read on every inbound message, and cleared on /stop.
// There is no expiry policy; a session lives until it is cleared or the
// backing store goes away (process restart for the in-memory store).
package session

import (
	"context"
	"sync"

	"github.com/rdwinata/lapakbot/internal/domain"
)

// Store is the session-state contract consumed by the dispatcher.
//
// Implementations must be safe for concurrent use: in a webhook
// deployment the hosting runtime may process different users' messages
// fully concurrently.
type Store interface {
	// Set records mode for userID, overwriting any existing mode.
	Set(ctx context.Context, userID string, mode domain.Mode) error

	// Get returns the current mode for userID. The boolean is false when
	// the user has no active session.
	Get(ctx context.Context, userID string) (domain.Mode, bool, error)

	// Clear removes the session for userID. Clearing an absent session
	// is a no-op, not an error.
	Clear(ctx context.Context, userID string) error
}

// MemoryStore is the default in-memory Store. State is process-local
// and lost on restart, which matches the polling deployment where a
// single process owns all sessions.
type MemoryStore struct {
	mu    sync.RWMutex
	modes map[string]domain.Mode
}

// NewMemoryStore returns an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{modes: make(map[string]domain.Mode)}
}

// Set records mode for userID, overwriting any existing mode.
func (s *MemoryStore) Set(_ context.Context, userID string, mode domain.Mode) error {
	s.mu.Lock()
	s.modes[userID] = mode
	s.mu.Unlock()
	return nil
}

// Get returns the current mode for userID, if any.
func (s *MemoryStore) Get(_ context.Context, userID string) (domain.Mode, bool, error) {
	s.mu.RLock()
	m, ok := s.modes[userID]
	s.mu.RUnlock()
	if !ok {
		return domain.ModeNone, false, nil
	}
	return m, true, nil
}

// Clear removes the session for userID; absent sessions are a no-op.
func (s *MemoryStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	delete(s.modes, userID)
	s.mu.Unlock()
	return nil
}

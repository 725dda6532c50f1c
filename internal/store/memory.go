package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/juaquiro/forecastLocalWeather/internal/forecast"
)

// SessionStore is a concurrency-safe, append-only in-memory accumulator
// for the readings of the current session. Readings are kept in
// insertion order; the sequence is only ever emptied as a whole.
type SessionStore struct {
	mu sync.RWMutex

	id        uuid.UUID
	startedAt time.Time
	readings  []forecast.Reading
}

// NewSessionStore creates an empty store with a fresh session identity.
func NewSessionStore() *SessionStore {
	s := &SessionStore{}
	s.reset()
	return s
}

// Append adds a reading to the end of the session.
func (s *SessionStore) Append(r forecast.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.readings = append(s.readings, r)
}

// Readings returns a copy of the session in insertion order. Mutating
// the returned slice does not affect the store.
func (s *SessionStore) Readings() []forecast.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]forecast.Reading, len(s.readings))
	copy(out, s.readings)
	return out
}

// Len returns the number of readings in the current session.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.readings)
}

// Info returns the identity of the current session.
func (s *SessionStore) Info() forecast.SessionInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return forecast.SessionInfo{ID: s.id, StartedAt: s.startedAt}
}

// Clear empties the store and starts a new session, returning the new
// session's identity.
func (s *SessionStore) Clear() forecast.SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	return forecast.SessionInfo{ID: s.id, StartedAt: s.startedAt}
}

func (s *SessionStore) reset() {
	s.id = uuid.New()
	s.startedAt = time.Now()
	s.readings = nil
}

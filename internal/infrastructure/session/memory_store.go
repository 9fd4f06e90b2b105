// Package session holds per-session state between render cycles. Nothing here
// outlives its TTL.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/fakenews-go/internal/domain"
	"github.com/doeshing/fakenews-go/internal/ports"
)

type memoryEntry struct {
	state   domain.SessionState
	expires time.Time
}

// MemoryStore keeps sessions in process memory and forgets them after an idle TTL.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
	newID    func() string
}

// NewMemoryStore creates a store; ttl <= 0 keeps sessions until Delete.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// GetOrInit implements ports.SessionStore. Any id the store does not hold gets a
// new session under a freshly minted id; client-chosen ids are never adopted.
func (s *MemoryStore) GetOrInit(_ context.Context, id string) (domain.SessionState, error) {
	now := s.now()

	if id != "" {
		s.mu.RLock()
		entry, ok := s.sessions[id]
		s.mu.RUnlock()
		if ok && !s.expired(entry, now) {
			return copyState(entry.state), nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)

	if entry, ok := s.sessions[id]; ok && id != "" {
		return copyState(entry.state), nil
	}
	id = s.newID()
	for {
		if _, taken := s.sessions[id]; !taken {
			break
		}
		id = s.newID()
	}
	state := domain.NewSessionState(id)
	state.UpdatedAt = now
	s.sessions[id] = memoryEntry{state: state, expires: s.deadline(now)}
	return copyState(state), nil
}

// Set implements ports.SessionStore.
func (s *MemoryStore) Set(_ context.Context, state domain.SessionState) error {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.ID] = memoryEntry{state: copyState(state), expires: s.deadline(now)}
	return nil
}

// Delete implements ports.SessionStore.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len reports how many live sessions are held.
func (s *MemoryStore) Len() int {
	now := s.now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, entry := range s.sessions {
		if !s.expired(entry, now) {
			n++
		}
	}
	return n
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	for id, entry := range s.sessions {
		if s.expired(entry, now) {
			delete(s.sessions, id)
		}
	}
}

func (s *MemoryStore) expired(entry memoryEntry, now time.Time) bool {
	return s.ttl > 0 && now.After(entry.expires)
}

func (s *MemoryStore) deadline(now time.Time) time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(s.ttl)
}

func copyState(state domain.SessionState) domain.SessionState {
	history := make([]domain.PredictionRecord, len(state.History))
	copy(history, state.History)
	state.History = history
	return state
}

var _ ports.SessionStore = (*MemoryStore)(nil)

package session

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid"
)

type memoryEntry struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Expired entries are
// dropped lazily on lookup, so no reaper goroutine is needed at this
// scale.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, userID uuid.UUID) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.sessions[token] = memoryEntry{userID: userID, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()

	return token, nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok {
		return uuid.Nil, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.sessions, token)
		return uuid.Nil, ErrNotFound
	}

	return entry.userID, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pollhub/backend/internal/models"
)

// MemoryUserStore is an in-memory UserStore, used in tests and when running
// without PostgreSQL.
type MemoryUserStore struct {
	mu     sync.RWMutex
	byName map[string]*models.User
	byID   map[uuid.UUID]*models.User
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byName: make(map[string]*models.User),
		byID:   make(map[uuid.UUID]*models.User),
	}
}

// Create inserts a new user, enforcing username uniqueness.
func (s *MemoryUserStore) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byName[username]; exists {
		return nil, ErrUsernameTaken
	}
	now := time.Now()
	u := &models.User{
		ID:        uuid.New(),
		Username:  username,
		Password:  passwordHash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.byName[username] = u
	s.byID[u.ID] = u
	copied := *u
	return &copied, nil
}

// GetByUsername returns a user by username.
func (s *MemoryUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byName[username]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

// GetByID returns a user by ID.
func (s *MemoryUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

type memorySession struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// MemorySessionStore is an in-process SessionStore. It is the fallback when
// Redis is not configured, and the store handler tests run against.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]memorySession
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[uuid.UUID]memorySession)}
}

// Put stores the session with the given TTL.
func (s *MemorySessionStore) Put(ctx context.Context, sessionID, userID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = memorySession{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Get returns the user ID bound to a live session.
func (s *MemorySessionStore) Get(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return uuid.Nil, ErrNotFound
	}
	if time.Now().After(sess.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return uuid.Nil, ErrNotFound
	}
	return sess.userID, nil
}

// Delete revokes the session.
func (s *MemorySessionStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pollhub/backend/internal/models"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("username already taken")
)

// UserStore persists account identities.
type UserStore interface {
	// Create inserts a new user with the given bcrypt hash.
	// Returns ErrUsernameTaken when the username is already registered.
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// SessionStore holds live session IDs server-side. A session exists only
// while its ID is present here, so deleting it is a hard revocation.
type SessionStore interface {
	Put(ctx context.Context, sessionID, userID uuid.UUID, ttl time.Duration) error
	// Get returns the user ID bound to the session, or ErrNotFound when the
	// session is absent or expired.
	Get(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error)
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

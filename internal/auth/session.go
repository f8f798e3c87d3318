package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pollhub/backend/internal/models"
)

// ErrInvalidSession is returned for tokens that are malformed, expired,
// tampered with, or revoked.
var ErrInvalidSession = errors.New("invalid session")

// SessionClaims are the signed contents of the session cookie.
type SessionClaims struct {
	SessionID uuid.UUID `json:"sid"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	jwt.RegisteredClaims
}

// Sessions issues, resolves and revokes authenticated sessions. The cookie
// value is a signed token carrying a session ID; the ID must also be live in
// the SessionStore, so Terminate kills the token immediately regardless of
// its expiry.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	store  SessionStore
	users  UserStore
}

// NewSessions creates a session service.
func NewSessions(secret string, ttlHours int, store SessionStore, users UserStore) *Sessions {
	return &Sessions{
		secret: []byte(secret),
		ttl:    time.Duration(ttlHours) * time.Hour,
		store:  store,
		users:  users,
	}
}

// TTL returns the session lifetime, for cookie max-age.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// Establish begins an authenticated session for the user and returns the
// cookie token.
func (s *Sessions) Establish(ctx context.Context, user *models.User) (string, error) {
	sessionID := uuid.New()
	if err := s.store.Put(ctx, sessionID, user.ID, s.ttl); err != nil {
		return "", err
	}
	claims := SessionClaims{
		SessionID: sessionID,
		UserID:    user.ID,
		Username:  user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Current resolves a cookie token to its user. Returns ErrInvalidSession when
// the token is bad, the session was terminated, or it no longer maps to a
// live user.
func (s *Sessions) Current(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	userID, err := s.store.Get(ctx, claims.SessionID)
	if err != nil || userID != claims.UserID {
		return nil, ErrInvalidSession
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidSession
	}
	return user, nil
}

// Terminate revokes the session named by the token. Subsequent Current calls
// with the same token fail. A bad token is not an error; there is nothing to
// revoke.
func (s *Sessions) Terminate(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return nil
	}
	return s.store.Delete(ctx, claims.SessionID)
}

func (s *Sessions) parse(token string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidSession
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

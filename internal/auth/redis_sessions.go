package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps live session IDs in Redis with a TTL, so sessions
// survive server restarts and expire server-side.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// Put stores the session with the given TTL.
func (s *RedisSessionStore) Put(ctx context.Context, sessionID, userID uuid.UUID, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKeyPrefix+sessionID.String(), userID.String(), ttl).Err()
}

// Get returns the user ID bound to a live session.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+sessionID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}
	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}
	return userID, nil
}

// Delete revokes the session.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID.String()).Err()
}

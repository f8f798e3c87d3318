package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestSessions(t *testing.T) (*Sessions, *MemoryUserStore, *MemorySessionStore) {
	t.Helper()
	users := NewMemoryUserStore()
	store := NewMemorySessionStore()
	return NewSessions("test-secret", 1, store, users), users, store
}

func TestSessionsEstablishAndCurrent(t *testing.T) {
	ctx := context.Background()
	sessions, users, _ := newTestSessions(t)

	user, err := users.Create(ctx, "alice", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := sessions.Establish(ctx, user)
	if err != nil {
		t.Fatalf("establish: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	resolved, err := sessions.Current(ctx, token)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if resolved.ID != user.ID || resolved.Username != "alice" {
		t.Errorf("resolved wrong user: %+v", resolved)
	}
}

func TestSessionsTerminateRevokes(t *testing.T) {
	ctx := context.Background()
	sessions, users, _ := newTestSessions(t)

	user, _ := users.Create(ctx, "bob", "hash")
	token, err := sessions.Establish(ctx, user)
	if err != nil {
		t.Fatalf("establish: %v", err)
	}

	if err := sessions.Terminate(ctx, token); err != nil {
		t.Fatalf("terminate: %v", err)
	}
	if _, err := sessions.Current(ctx, token); err == nil {
		t.Error("token still valid after terminate")
	}
}

func TestSessionsRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	sessions, users, _ := newTestSessions(t)
	user, _ := users.Create(ctx, "carol", "hash")
	token, _ := sessions.Establish(ctx, user)

	other := NewSessions("other-secret", 1, NewMemorySessionStore(), users)

	cases := []struct {
		name  string
		token string
		svc   *Sessions
	}{
		{"empty", "", sessions},
		{"garbage", "not.a.token", sessions},
		{"tampered", token + "x", sessions},
		{"wrong secret", token, other},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.svc.Current(ctx, tc.token); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSessionsExpiredStoreEntry(t *testing.T) {
	ctx := context.Background()
	sessions, users, store := newTestSessions(t)
	user, _ := users.Create(ctx, "dave", "hash")
	token, _ := sessions.Establish(ctx, user)

	// Replace the session entry with one that is already expired.
	claims, err := sessions.parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := store.Put(ctx, claims.SessionID, user.ID, -time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}

	if _, err := sessions.Current(ctx, token); err == nil {
		t.Error("expired store entry still resolves")
	}
}

func TestSessionsRebindToForeignUser(t *testing.T) {
	ctx := context.Background()
	sessions, users, store := newTestSessions(t)
	user, _ := users.Create(ctx, "erin", "hash")
	token, _ := sessions.Establish(ctx, user)

	// Rebind the session to a different user ID server-side; the token's
	// claims no longer match and must be rejected.
	claims, err := sessions.parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := store.Put(ctx, claims.SessionID, uuid.New(), time.Hour); err != nil {
		t.Fatalf("put: %v", err)
	}

	if _, err := sessions.Current(ctx, token); err == nil {
		t.Error("token resolved after session was rebound to another user")
	}
}

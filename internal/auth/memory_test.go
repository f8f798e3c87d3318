package auth

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryUserStoreCreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	created, err := store.Create(ctx, "alice", "hash-a")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	byName, err := store.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if byName.ID != created.ID || byName.Password != "hash-a" {
		t.Errorf("wrong user returned: %+v", byName)
	}

	byID, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Username != "alice" {
		t.Errorf("wrong user by id: %+v", byID)
	}
}

func TestMemoryUserStoreDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	if _, err := store.Create(ctx, "bob", "h1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Create(ctx, "bob", "h2"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestMemoryUserStoreMissing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()
	if _, err := store.GetByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

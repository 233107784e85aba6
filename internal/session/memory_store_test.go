package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id, err := store.Create(ctx, 7, time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	userID, err := store.Lookup(ctx, id)
	if err != nil || userID != 7 {
		t.Fatalf("expected user 7, got %d (%v)", userID, err)
	}

	if err := store.Destroy(ctx, id); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if _, err := store.Lookup(ctx, id); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected not found after destroy, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	id, _ := store.Create(ctx, 1, time.Minute)

	now = now.Add(2 * time.Minute)
	if _, err := store.Lookup(ctx, id); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
}

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryPutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemory[[]string](0)

	if err := store.Put(ctx, "k", []string{"a", "b"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got) != 2 || got[1] != "b" {
		t.Fatalf("Get() = %v, want [a b]", got)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("Get() error = %v, want ErrMiss", err)
	}
}

func TestMemoryExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemory[string](30 * time.Second)
	store.now = func() time.Time { return clock }

	if err := store.Put(ctx, "k", "v"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	clock = clock.Add(29 * time.Second)
	if got, err := store.Get(ctx, "k"); err != nil || got != "v" {
		t.Fatalf("Get() = %q, %v, want %q", got, err, "v")
	}
	clock = clock.Add(time.Second)
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("Get() error = %v, want ErrMiss", err)
	}
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	_, err := NewRedis[string](context.Background(), "not-a-url", "inbox:", 0)
	if err == nil {
		t.Fatalf("NewRedis() expected error for invalid url")
	}
}

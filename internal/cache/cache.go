package cache

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

type Storage[V any] interface {
	Get(ctx context.Context, key string) (V, error)
	Put(ctx context.Context, key string, item V) error
	Delete(ctx context.Context, key string) error
}

type memoryEntry[V any] struct {
	item      V
	expiresAt time.Time
}

// Memory keeps items in process. A zero ttl keeps items until deleted.
type Memory[V any] struct {
	mu    sync.RWMutex
	items map[string]memoryEntry[V]
	ttl   time.Duration
	now   func() time.Time
}

func NewMemory[V any](ttl time.Duration) *Memory[V] {
	return &Memory[V]{
		items: make(map[string]memoryEntry[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

var _ Storage[int] = (*Memory[int])(nil)

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.items[key]
	if !ok || (!entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt)) {
		var zero V
		return zero, ErrMiss
	}
	return entry.item, nil
}

func (m *Memory[V]) Put(_ context.Context, key string, item V) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := memoryEntry[V]{item: item}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.items[key] = entry
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem[T any] struct {
	value     T
	expiresAt time.Time
}

// Memory is an in-process Cache, used in tests and single-node deployments
// without Redis.
type Memory[T any] struct {
	mu    sync.RWMutex
	items map[string]memoryItem[T]
}

func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{items: make(map[string]memoryItem[T])}
}

func (c *Memory[T]) Get(_ context.Context, key string) (T, error) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	var zero T
	if !ok {
		return zero, ErrKeyNotFound
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return zero, ErrKeyNotFound
	}
	return item.value, nil
}

func (c *Memory[T]) Set(_ context.Context, key string, value T, ttl time.Duration) error {
	item := memoryItem[T]{value: value}
	if ttl > 0 {
		item.expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = item
	c.mu.Unlock()
	return nil
}

func (c *Memory[T]) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	return nil
}

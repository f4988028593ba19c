// Package cache keeps loaded values per key for a fixed time.
package cache

import (
	"context"
	"sync"
	"time"
)

type Loader[T any] func(ctx context.Context, key string) (T, error)

// Cache loads a key at most once per ttl. Concurrent loads of one key wait
// for the first. Failed loads are not kept.
type Cache[T any] struct {
	mx      sync.Mutex
	entries map[string]*entry[T]
	ttl     time.Duration
	loader  Loader[T]
}

type entry[T any] struct {
	mx     sync.Mutex
	value  T
	loaded time.Time
}

func NewWithTTL[T any](ttl time.Duration, loader Loader[T]) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]*entry[T]),
		ttl:     ttl,
		loader:  loader,
	}
}

func (c *Cache[T]) Load(ctx context.Context, key string) (T, error) {
	e := c.entry(key)

	e.mx.Lock()
	defer e.mx.Unlock()

	if !e.loaded.IsZero() && time.Since(e.loaded) <= c.ttl {
		return e.value, nil
	}

	v, err := c.loader(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}

	e.value, e.loaded = v, time.Now()

	return v, nil
}

func (c *Cache[T]) entry(key string) *entry[T] {
	c.mx.Lock()
	defer c.mx.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = new(entry[T])
		c.entries[key] = e
	}

	return e
}

func (c *Cache[T]) Invalidate(key string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	delete(c.entries, key)
}

// Clean drops expired entries that are not being loaded.
func (c *Cache[T]) Clean() {
	c.mx.Lock()
	defer c.mx.Unlock()

	for k, e := range c.entries {
		if !e.mx.TryLock() {
			continue
		}

		if time.Since(e.loaded) > c.ttl {
			delete(c.entries, k)
		}

		e.mx.Unlock()
	}
}

func (c *Cache[T]) Len() int {
	c.mx.Lock()
	defer c.mx.Unlock()

	return len(c.entries)
}

// Run cleans the cache every period until ctx is done.
func (c *Cache[T]) Run(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Clean()
		}
	}
}

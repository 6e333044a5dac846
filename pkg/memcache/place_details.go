package mem

import (
	"sync"
	"time"
)

// DetailsCache keeps recently fetched place details in process so repeated
// enrichment of the same place within a distribution batch doesn't hit the
// lookup provider again.
type DetailsCache[T any] struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]detailsEntry[T]
}

type detailsEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func NewDetailsCache[T any](ttl time.Duration) *DetailsCache[T] {
	return &DetailsCache[T]{
		ttl:  ttl,
		data: make(map[string]detailsEntry[T]),
	}
}

func (c *DetailsCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = detailsEntry[T]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *DetailsCache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		var zero T
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.data, key) // cleanup expired
		c.mu.Unlock()
		var zero T
		return zero, false
	}
	return e.value, true
}

func (c *DetailsCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

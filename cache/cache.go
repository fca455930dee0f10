package cache

import (
	"sync"
	"sync/atomic"
)

// cache guards one Engine with a single mutex.
type cache[K comparable, V any] struct {
	mu     sync.Mutex
	e      *Engine[K, V]
	closed atomic.Bool
}

var _ Cache[int, int] = (*cache[int, int])(nil)

// New constructs a synchronized cache with the provided Options.
// Defaults:
//   - nil Metrics  -> NoopMetrics
//   - nil Logger   -> discard
//   - nil Observer -> events are not produced
//
// Capacity < 1 is rejected with ErrInvalidCapacity.
func New[K comparable, V any](opt Options[K, V]) (Cache[K, V], error) {
	e, err := NewEngine(opt)
	if err != nil {
		return nil, err
	}
	// return pointer-to-impl as the interface (avoids unexported-return lint)
	return &cache[K, V]{e: e}, nil
}

// MustNew is like New but panics on an invalid configuration.
func MustNew[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	c, err := New(opt)
	if err != nil {
		panic(err)
	}
	return c
}

// ---- Cache[K,V] implementation ----

func (c *cache[K, V]) Add(k K, v V) (evicted V, ok bool) {
	if c.closed.Load() {
		return evicted, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.e.Add(k, v)
}

func (c *cache[K, V]) Remove(k K) bool {
	if c.closed.Load() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.e.Remove(k)
}

func (c *cache[K, V]) RemoveHead() (v V, ok bool) {
	if c.closed.Load() {
		return v, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.e.RemoveHead()
}

func (c *cache[K, V]) Use(k K) (v V, ok bool) {
	if c.closed.Load() {
		return v, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.e.Use(k)
}

func (c *cache[K, V]) Keys() []K {
	if c.closed.Load() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.e.Keys()
}

func (c *cache[K, V]) Peek(k K) (v V, ok bool) {
	if c.closed.Load() {
		return v, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.e.Peek(k)
}

func (c *cache[K, V]) Contains(k K) bool {
	if c.closed.Load() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.e.Contains(k)
}

func (c *cache[K, V]) Len() int {
	if c.closed.Load() {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.e.Len()
}

// Cap is immutable after construction and needs no lock.
func (c *cache[K, V]) Cap() int { return c.e.Cap() }

func (c *cache[K, V]) Purge() {
	if c.closed.Load() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.e.Purge()
}

func (c *cache[K, V]) Do(fn func(e *Engine[K, V])) {
	if c.closed.Load() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.e)
}

func (c *cache[K, V]) Stats() Stats { return c.e.Stats() }

// Close marks the cache as closed. Future operations are ignored.
// Entries are left in place; they become unreachable with the cache.
func (c *cache[K, V]) Close() error {
	c.closed.Store(true)
	return nil
}

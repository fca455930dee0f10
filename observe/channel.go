package observe

import (
	"sync"
	"sync/atomic"

	"github.com/IvanBrykalov/lrucache/cache"
)

// Channel publishes events into a buffered channel without ever blocking
// the cache. Events that do not fit are dropped and counted.
type Channel[K comparable, V any] struct {
	mu      sync.RWMutex
	ch      chan cache.Event[K, V]
	closed  bool
	dropped atomic.Uint64
}

// NewChannel creates a Channel with the given buffer size (minimum 1).
func NewChannel[K comparable, V any](size int) *Channel[K, V] {
	if size < 1 {
		size = 1
	}
	return &Channel[K, V]{ch: make(chan cache.Event[K, V], size)}
}

// Observe implements cache.Observer.
func (c *Channel[K, V]) Observe(ev cache.Event[K, V]) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		c.dropped.Add(1)
		return
	}
	select {
	case c.ch <- ev:
	default:
		c.dropped.Add(1)
	}
}

// Events returns the receive side. It is closed by Close.
func (c *Channel[K, V]) Events() <-chan cache.Event[K, V] { return c.ch }

// Dropped reports how many events were discarded because the buffer was
// full or the channel was closed.
func (c *Channel[K, V]) Dropped() uint64 { return c.dropped.Load() }

// Close closes the events channel. Later events are dropped. Idempotent.
func (c *Channel[K, V]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.ch)
}

var _ cache.Observer[int, int] = (*Channel[int, int])(nil)

package cache

// Cache is a bounded, strict-LRU key/value cache.
// All methods are safe for concurrent use by multiple goroutines: each
// call holds one exclusive lock for its whole duration.
//
// Every operation is O(1) expected except Keys, Values and Purge, which
// are O(n).
type Cache[K comparable, V any] interface {
	// Add inserts or updates k→v and makes k the most recently used entry.
	// When a new key pushes the size over capacity, the least recently
	// used entry is evicted and its value returned with ok=true.
	// Updating an existing key never evicts.
	Add(k K, v V) (evicted V, ok bool)

	// Remove deletes k and reports whether it was present.
	Remove(k K) bool

	// RemoveHead evicts the least recently used entry and returns its
	// value; ok is false when the cache is empty.
	RemoveHead() (v V, ok bool)

	// Use returns the value for k and marks k most recently used.
	Use(k K) (v V, ok bool)

	// Keys returns a snapshot of all keys, least recently used first.
	Keys() []K

	// Peek returns the value for k without touching it.
	Peek(k K) (v V, ok bool)

	// Contains reports whether k is present without touching it.
	Contains(k K) bool

	// Len returns the number of resident entries.
	Len() int

	// Cap returns the configured capacity.
	Cap() int

	// Purge removes all entries.
	Purge()

	// Do runs fn with exclusive access to the underlying engine. Calls on
	// the engine inside fn form one atomic step for other goroutines.
	// fn must not call methods of this Cache (the lock is not reentrant)
	// and must not retain the engine after returning.
	Do(fn func(e *Engine[K, V]))

	// Stats returns a snapshot of hit/miss/eviction counters.
	Stats() Stats

	// Close marks the cache closed. Later calls become no-ops that return
	// absent results. Close is idempotent and returns nil.
	Close() error
}

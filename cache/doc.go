// Package cache provides a bounded, generic, strict-LRU key/value cache
// with O(1) insert, remove, touch, forced head eviction and an ordered
// key snapshot.
//
// Design
//
//   - Storage: an Engine keeps a map[K]handle index and a doubly linked
//     recency sequence from head (least recently used, evicted first) to
//     tail (most recently used). Nodes live in an arena and are addressed
//     by 32-bit handles; handle 0 is the "no link" sentinel, and released
//     slots are recycled through a free list. Neither the index nor a
//     neighbor ever holds a pointer to a node.
//
//   - Concurrency: Engine is unsynchronized. Cache wraps one Engine with a
//     single sync.Mutex held for the whole of every call. Cache.Do hands
//     the locked engine to a callback so several operations can run as
//     one atomic step; this is how composed calls avoid re-acquiring the
//     (non-reentrant) lock.
//
//   - Recency: only Add (insert or overwrite) and Use move an entry to the
//     tail. Peek, Contains, Keys and Values never reorder.
//
//   - Capacity: counted in entries. Adding a new key to a full cache
//     evicts the head synchronously inside Add and returns its value.
//     Absent results are reported as (zero, false), never as a zero value
//     alone, so an evicted zero value is distinguishable from "nothing".
//
//   - Observation: Options.Observer receives an Event for every state
//     change and every not-found outcome, in order, under the lock. A
//     panicking observer is recovered and logged via Options.Logger.
//     Options.Metrics receives Hit/Miss/Evict/Size signals (see
//     metrics/prom and metrics/otel); Options.OnEvict is called for
//     every eviction.
//
//   - Invariants: Engine.Validate checks the index and the sequence
//     against each other. Building with -tags lrudebug runs it after every
//     mutating call and panics on a violation.
//
// Basic usage
//
//	c, err := cache.New[int, string](cache.Options[int, string]{Capacity: 5})
//	if err != nil {
//	    return err
//	}
//	for i := range 5 {
//	    c.Add(i, strconv.Itoa(i))
//	}
//	if v, ok := c.Add(5, "5"); ok {
//	    _ = v // "0": key 0 was the least recently used
//	}
//	c.Use(2)
//	_ = c.Keys() // [1 3 4 5 2]
//
// Composing operations atomically
//
//	c.Do(func(e *cache.Engine[int, string]) {
//	    if _, ok := e.Peek(k); !ok {
//	        e.Add(k, load(k))
//	    }
//	})
//
// Observing events
//
//	c, _ := cache.New[string, []byte](cache.Options[string, []byte]{
//	    Capacity: 1024,
//	    Observer: observe.Slog[string, []byte](logger, slog.LevelDebug),
//	})
package cache

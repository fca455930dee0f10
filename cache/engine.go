package cache

import (
	"log/slog"

	"github.com/IvanBrykalov/lrucache/internal/util"
)

// Engine is the unsynchronized LRU core: a key->handle index and a
// doubly linked recency sequence (head=LRU, tail=MRU) over an arena of
// nodes. Every public method keeps both structures in agreement.
//
// Engine is not safe for concurrent use. Use Cache, or reach the engine
// of a Cache through Cache.Do.
type Engine[K comparable, V any] struct {
	index map[K]handle
	nodes arena[K, V]
	head  handle // LRU, evicted first
	tail  handle // MRU
	cap   int

	opt Options[K, V]

	// ---- counters (bumped by the lock holder, read lock-free by Stats) ----
	_              util.CacheLinePad
	hits           util.Counter
	misses         util.Counter
	inserts        util.Counter
	overwrites     util.Counter
	evictions      util.Counter
	removals       util.Counter
	observerPanics util.Counter
}

// NewEngine builds an engine. It returns ErrInvalidCapacity for
// Capacity < 1 and ErrCapacityTooLarge above MaxCapacity.
func NewEngine[K comparable, V any](opt Options[K, V]) (*Engine[K, V], error) {
	if err := checkCapacity(opt.Capacity); err != nil {
		return nil, err
	}
	opt = opt.withDefaults()
	return &Engine[K, V]{
		index: make(map[K]handle, min(opt.Capacity+1, maxPrealloc)),
		nodes: newArena[K, V](opt.Capacity),
		cap:   opt.Capacity,
		opt:   opt,
	}, nil
}

// Add inserts or updates k→v and makes k the most recently used entry.
//
// Updating an existing key never evicts (the size does not change) and
// returns ok=false. Inserting a new key into a full cache evicts the LRU
// entry and returns its value with ok=true.
func (e *Engine[K, V]) Add(k K, v V) (evicted V, ok bool) {
	defer e.debugCheck()

	if h, exists := e.index[k]; exists {
		e.nodes.at(h).val = v
		e.unlink(h)
		e.appendTail(h)
		e.overwrites.Inc()
		e.emit(Event[K, V]{Op: OpAdd, Kind: EventOverwritten, Key: k, Value: v})
		return evicted, false
	}

	h := e.nodes.alloc(k, v)
	e.index[k] = h
	e.appendTail(h)
	e.inserts.Inc()
	e.emit(Event[K, V]{Op: OpAdd, Kind: EventInserted, Key: k, Value: v})

	if len(e.index) > e.cap {
		_, evicted = e.evictHead(OpAdd, EvictCapacity)
		ok = true
	}
	e.opt.Metrics.Size(len(e.index), e.cap)
	return evicted, ok
}

// Remove deletes k. It reports whether k was present; an absent key is a
// no-op that still produces an EventNotFound.
func (e *Engine[K, V]) Remove(k K) bool {
	defer e.debugCheck()

	h, ok := e.index[k]
	if !ok {
		e.emit(Event[K, V]{Op: OpRemove, Kind: EventNotFound, Key: k})
		return false
	}
	v := e.drop(h)
	e.removals.Inc()
	e.emit(Event[K, V]{Op: OpRemove, Kind: EventRemoved, Key: k, Value: v})
	e.opt.Metrics.Size(len(e.index), e.cap)
	return true
}

// RemoveHead evicts the least recently used entry and returns its value.
// ok is false when the cache is empty.
func (e *Engine[K, V]) RemoveHead() (v V, ok bool) {
	defer e.debugCheck()

	if e.head == nilHandle {
		e.emit(Event[K, V]{Op: OpRemoveHead, Kind: EventNotFound})
		return v, false
	}
	_, v = e.evictHead(OpRemoveHead, EvictHead)
	e.opt.Metrics.Size(len(e.index), e.cap)
	return v, true
}

// Use returns the value for k and marks it most recently used.
// ok is false when k is absent.
func (e *Engine[K, V]) Use(k K) (v V, ok bool) {
	defer e.debugCheck()

	h, found := e.index[k]
	if !found {
		e.misses.Inc()
		e.opt.Metrics.Miss()
		e.emit(Event[K, V]{Op: OpUse, Kind: EventNotFound, Key: k})
		return v, false
	}
	if h != e.tail {
		e.unlink(h)
		e.appendTail(h)
	}
	v = e.nodes.at(h).val
	e.hits.Inc()
	e.opt.Metrics.Hit()
	e.emit(Event[K, V]{Op: OpUse, Kind: EventUsed, Key: k, Value: v})
	return v, true
}

// Keys returns a fresh slice of all keys, least recently used first.
func (e *Engine[K, V]) Keys() []K {
	keys := make([]K, 0, len(e.index))
	for h := e.head; h != nilHandle; h = e.nodes.at(h).next {
		keys = append(keys, e.nodes.at(h).key)
	}
	return keys
}

// Values returns a fresh slice of all values in the same order as Keys.
func (e *Engine[K, V]) Values() []V {
	vals := make([]V, 0, len(e.index))
	for h := e.head; h != nilHandle; h = e.nodes.at(h).next {
		vals = append(vals, e.nodes.at(h).val)
	}
	return vals
}

// Peek returns the value for k without changing its recency.
func (e *Engine[K, V]) Peek(k K) (v V, ok bool) {
	h, ok := e.index[k]
	if !ok {
		return v, false
	}
	return e.nodes.at(h).val, true
}

// Contains reports whether k is present without changing its recency.
func (e *Engine[K, V]) Contains(k K) bool {
	_, ok := e.index[k]
	return ok
}

// Oldest returns the entry RemoveHead would evict next.
func (e *Engine[K, V]) Oldest() (k K, v V, ok bool) {
	if e.head == nilHandle {
		return k, v, false
	}
	n := e.nodes.at(e.head)
	return n.key, n.val, true
}

// Len returns the number of resident entries.
func (e *Engine[K, V]) Len() int { return len(e.index) }

// Cap returns the configured capacity.
func (e *Engine[K, V]) Cap() int { return e.cap }

// Purge removes every entry, LRU first, emitting EventRemoved for each.
// Purged entries are not evictions.
func (e *Engine[K, V]) Purge() {
	defer e.debugCheck()

	for e.head != nilHandle {
		k := e.nodes.at(e.head).key
		v := e.drop(e.head)
		e.removals.Inc()
		e.emit(Event[K, V]{Op: OpPurge, Kind: EventRemoved, Key: k, Value: v})
	}
	e.nodes.reset()
	e.opt.Metrics.Size(0, e.cap)
}

// Stats returns a snapshot of the counters. It is safe to call
// concurrently with any operation.
func (e *Engine[K, V]) Stats() Stats {
	return Stats{
		Hits:           e.hits.Load(),
		Misses:         e.misses.Load(),
		Inserts:        e.inserts.Load(),
		Overwrites:     e.overwrites.Load(),
		Evictions:      e.evictions.Load(),
		Removals:       e.removals.Load(),
		ObserverPanics: e.observerPanics.Load(),
	}
}

// -------------------- internals --------------------

// evictHead drops the head node and reports the eviction everywhere.
// The caller guarantees the sequence is non-empty.
func (e *Engine[K, V]) evictHead(op Op, reason EvictReason) (K, V) {
	h := e.head
	k := e.nodes.at(h).key
	v := e.drop(h)
	e.evictions.Inc()
	e.opt.Metrics.Evict(reason)
	e.emit(Event[K, V]{Op: op, Kind: EventEvicted, Key: k, Value: v, Reason: reason})
	if cb := e.opt.OnEvict; cb != nil {
		cb(k, v, reason)
	}
	return k, v
}

// drop removes h from the index and the sequence, releases its slot and
// returns the value it held.
func (e *Engine[K, V]) drop(h handle) V {
	n := e.nodes.at(h)
	k, v := n.key, n.val
	delete(e.index, k)
	e.unlink(h)
	e.nodes.release(h)
	return v
}

// unlink detaches h from the sequence, repairing head/tail/neighbors for
// each of the four positions h can occupy, and clears h's own links.
func (e *Engine[K, V]) unlink(h handle) {
	n := e.nodes.at(h)
	switch {
	case h == e.head && h == e.tail: // sole node
		e.head, e.tail = nilHandle, nilHandle
	case h == e.head:
		e.head = n.next
		e.nodes.at(e.head).prev = nilHandle
	case h == e.tail:
		e.tail = n.prev
		e.nodes.at(e.tail).next = nilHandle
	default: // interior
		e.nodes.at(n.prev).next = n.next
		e.nodes.at(n.next).prev = n.prev
	}
	n.prev, n.next = nilHandle, nilHandle
}

// appendTail links a detached h after the current tail (MRU end).
func (e *Engine[K, V]) appendTail(h handle) {
	n := e.nodes.at(h)
	n.prev, n.next = e.tail, nilHandle
	if e.tail == nilHandle {
		e.head = h
	} else {
		e.nodes.at(e.tail).next = h
	}
	e.tail = h
}

// emit hands ev to the observer. A panicking observer is recovered and
// logged so that it can never leave the structure half-updated for the
// caller or escape the cache lock.
func (e *Engine[K, V]) emit(ev Event[K, V]) {
	obs := e.opt.Observer
	if obs == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.observerPanics.Inc()
			e.opt.Logger.Error("cache: observer panicked",
				slog.String("event", ev.String()),
				slog.Any("panic", r))
		}
	}()
	obs.Observe(ev)
}

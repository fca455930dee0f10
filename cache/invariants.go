package cache

// Validate walks the whole structure and reports the first broken
// invariant: index and sequence disagree, a link does not point back,
// the walk cycles or overruns, head/tail are inconsistent, the size
// exceeds capacity, or arena slots leaked.
//
// It is O(n) and meant for tests and debug builds.
func (e *Engine[K, V]) Validate() error {
	size := len(e.index)

	if (e.head == nilHandle) != (e.tail == nilHandle) {
		return invariantf("head=%d tail=%d: exactly one is nil", e.head, e.tail)
	}
	if (e.head == nilHandle) != (size == 0) {
		return invariantf("head=%d with %d indexed keys", e.head, size)
	}
	if size > e.cap {
		return invariantf("size %d exceeds capacity %d", size, e.cap)
	}
	if e.nodes.live != size {
		return invariantf("arena has %d live slots, index has %d keys", e.nodes.live, size)
	}

	for _, h := range []handle{e.head, e.tail} {
		if int(h) >= len(e.nodes.nodes) {
			return invariantf("handle %d out of arena range %d", h, len(e.nodes.nodes))
		}
	}
	if size > 0 {
		if p := e.nodes.at(e.head).prev; p != nilHandle {
			return invariantf("head %d has prev %d", e.head, p)
		}
		if n := e.nodes.at(e.tail).next; n != nilHandle {
			return invariantf("tail %d has next %d", e.tail, n)
		}
	}

	steps := 0
	prev := nilHandle
	for h := e.head; h != nilHandle; h = e.nodes.at(h).next {
		if int(h) >= len(e.nodes.nodes) {
			return invariantf("handle %d out of arena range %d", h, len(e.nodes.nodes))
		}
		steps++
		if steps > size {
			return invariantf("walk exceeded %d nodes: cycle or unindexed node", size)
		}
		n := e.nodes.at(h)
		if n.prev != prev {
			return invariantf("node %d: prev=%d, want %d", h, n.prev, prev)
		}
		ih, ok := e.index[n.key]
		if !ok {
			return invariantf("node %d key %v missing from index", h, n.key)
		}
		if ih != h {
			return invariantf("key %v indexed at %d but linked at %d", n.key, ih, h)
		}
		prev = h
	}
	if steps != size {
		return invariantf("walk visited %d nodes, index has %d", steps, size)
	}
	if prev != e.tail {
		return invariantf("walk ended at %d, tail is %d", prev, e.tail)
	}

	free, ok := e.nodes.freeLen(len(e.nodes.nodes))
	if !ok {
		return invariantf("free list is cyclic or out of range")
	}
	if got := 1 + size + free; got != len(e.nodes.nodes) {
		return invariantf("arena slots %d != sentinel + %d live + %d free", len(e.nodes.nodes), size, free)
	}
	return nil
}

// debugCheck panics on a broken invariant in builds tagged lrudebug and
// compiles to nothing otherwise.
func (e *Engine[K, V]) debugCheck() {
	if !debugInvariants {
		return
	}
	if err := e.Validate(); err != nil {
		panic(err)
	}
}

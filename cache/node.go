package cache

// handle identifies a node slot in the arena. The zero handle is the
// "no link" sentinel: slot 0 is allocated at construction and never holds
// a live entry, so a zero prev/next/head/tail always means "none".
type handle uint32

const nilHandle handle = 0

// node is one live entry placed in the recency sequence.
// Links point toward the LRU end (prev) and the MRU end (next).
type node[K comparable, V any] struct {
	key K
	val V

	prev handle
	next handle
}

// arena owns every node. The index and the neighbor links only refer to
// nodes by handle, so a released slot can never be reached through a
// stale pointer: it is either on the free list or reused for a new key.
//
// Free slots are chained through node.next.
type arena[K comparable, V any] struct {
	nodes []node[K, V]
	free  handle
	live  int
}

// maxPrealloc bounds the up-front slot reservation for very large caches;
// the slice still grows on demand past it.
const maxPrealloc = 1 << 12

func newArena[K comparable, V any](capacity int) arena[K, V] {
	// +1 for the sentinel, +1 for the transient overflow slot in Add.
	n := capacity + 2
	if n > maxPrealloc {
		n = maxPrealloc
	}
	nodes := make([]node[K, V], 1, n)
	return arena[K, V]{nodes: nodes}
}

// alloc places k/v in a free slot (or a new one) with cleared links.
// Pointers returned by at() before alloc must not be used after it:
// growing the slice moves the nodes.
func (a *arena[K, V]) alloc(k K, v V) handle {
	a.live++
	if h := a.free; h != nilHandle {
		n := &a.nodes[h]
		a.free = n.next
		*n = node[K, V]{key: k, val: v}
		return h
	}
	a.nodes = append(a.nodes, node[K, V]{key: k, val: v})
	return handle(len(a.nodes) - 1)
}

// release zeroes the slot so it does not pin user memory and pushes it on
// the free list.
func (a *arena[K, V]) release(h handle) {
	a.nodes[h] = node[K, V]{next: a.free}
	a.free = h
	a.live--
}

func (a *arena[K, V]) at(h handle) *node[K, V] { return &a.nodes[h] }

// reset drops every slot except the sentinel, keeping the backing array.
func (a *arena[K, V]) reset() {
	clear(a.nodes)
	a.nodes = a.nodes[:1]
	a.free = nilHandle
	a.live = 0
}

// freeLen walks the free list; used only by Validate.
func (a *arena[K, V]) freeLen(limit int) (n int, ok bool) {
	for h := a.free; h != nilHandle; h = a.nodes[h].next {
		n++
		if n > limit || int(h) >= len(a.nodes) {
			return n, false
		}
	}
	return n, true
}

package cache

import "fmt"

// Op names the public operation that produced an event.
type Op uint8

const (
	OpAdd Op = iota
	OpRemove
	OpRemoveHead
	OpUse
	OpPurge
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpRemoveHead:
		return "remove-head"
	case OpUse:
		return "use"
	case OpPurge:
		return "purge"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// EventKind is what happened to the entry.
type EventKind uint8

const (
	// EventInserted: a new key was appended at the MRU end.
	EventInserted EventKind = iota
	// EventOverwritten: an existing key got a new value and became MRU.
	EventOverwritten
	// EventEvicted: the LRU entry was dropped (see Event.Reason).
	EventEvicted
	// EventRemoved: an entry was removed by key or by Purge.
	EventRemoved
	// EventUsed: an entry was touched and is now MRU.
	EventUsed
	// EventNotFound: Remove/Use on an absent key, or RemoveHead on an empty cache.
	EventNotFound
)

func (k EventKind) String() string {
	switch k {
	case EventInserted:
		return "inserted"
	case EventOverwritten:
		return "overwritten"
	case EventEvicted:
		return "evicted"
	case EventRemoved:
		return "removed"
	case EventUsed:
		return "used"
	case EventNotFound:
		return "not-found"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event describes one observable outcome of a cache operation.
// Value is the entry's value after the operation (the dropped value for
// evictions and removals) and the zero value for EventNotFound.
// Reason is meaningful only for EventEvicted.
type Event[K comparable, V any] struct {
	Op     Op
	Kind   EventKind
	Key    K
	Value  V
	Reason EvictReason
}

// String renders the event as a single human-readable line.
func (e Event[K, V]) String() string {
	switch e.Kind {
	case EventNotFound:
		if e.Op == OpRemoveHead {
			return "remove-head: cache is empty"
		}
		return fmt.Sprintf("%s: key %v not found", e.Op, e.Key)
	case EventEvicted:
		return fmt.Sprintf("key %v evicted (%s)", e.Key, e.Reason)
	default:
		return fmt.Sprintf("key %v %s", e.Key, e.Kind)
	}
}

// Observer receives cache events. See Options.Observer for the calling
// contract.
type Observer[K comparable, V any] interface {
	Observe(Event[K, V])
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc[K comparable, V any] func(Event[K, V])

func (f ObserverFunc[K, V]) Observe(e Event[K, V]) { f(e) }

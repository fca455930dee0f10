package observe

import "github.com/IvanBrykalov/lrucache/cache"

// Lines returns an observer that passes each event's String form to fn.
func Lines[K comparable, V any](fn func(line string)) cache.Observer[K, V] {
	return cache.ObserverFunc[K, V](func(ev cache.Event[K, V]) {
		fn(ev.String())
	})
}

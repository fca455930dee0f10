package observe

import "github.com/IvanBrykalov/lrucache/cache"

// Tee fans every event out to all non-nil observers, in argument order.
func Tee[K comparable, V any](obs ...cache.Observer[K, V]) cache.Observer[K, V] {
	list := make([]cache.Observer[K, V], 0, len(obs))
	for _, o := range obs {
		if o != nil {
			list = append(list, o)
		}
	}
	if len(list) == 1 {
		return list[0]
	}
	return cache.ObserverFunc[K, V](func(ev cache.Event[K, V]) {
		for _, o := range list {
			o.Observe(ev)
		}
	})
}

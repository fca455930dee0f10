// Package observe provides ready-made cache.Observer implementations.
//
// Observers run while the cache lock is held, so they must be quick and
// must not call back into the cache. Channel is the escape hatch: it
// hands events to a consumer goroutine that may use the cache freely.
//
//	events := observe.NewChannel[string, int](128)
//	c := cache.MustNew(cache.Options[string, int]{
//		Capacity: 1000,
//		Observer: observe.Tee(observe.Slog[string, int](logger, slog.LevelDebug), events),
//	})
//	go func() {
//		for ev := range events.Events() {
//			if ev.Kind == cache.EventEvicted {
//				c.Add(ev.Key, ev.Value) // safe: not under the cache lock
//			}
//		}
//	}()
package observe

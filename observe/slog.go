package observe

import (
	"context"
	"log/slog"

	"github.com/IvanBrykalov/lrucache/cache"
)

// Slog returns an observer that writes one record per event to logger at
// level. The message is the event line; op, kind and key are attributes.
// Values are not logged.
func Slog[K comparable, V any](logger *slog.Logger, level slog.Level) cache.Observer[K, V] {
	if logger == nil {
		logger = slog.Default()
	}
	return cache.ObserverFunc[K, V](func(ev cache.Event[K, V]) {
		ctx := context.Background()
		if !logger.Enabled(ctx, level) {
			return
		}
		attrs := []slog.Attr{
			slog.String("op", ev.Op.String()),
			slog.String("kind", ev.Kind.String()),
		}
		if ev.Op != cache.OpRemoveHead || ev.Kind != cache.EventNotFound {
			attrs = append(attrs, slog.Any("key", ev.Key))
		}
		if ev.Kind == cache.EventEvicted {
			attrs = append(attrs, slog.String("reason", ev.Reason.String()))
		}
		logger.LogAttrs(ctx, level, ev.String(), attrs...)
	})
}

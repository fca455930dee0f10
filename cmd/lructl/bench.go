package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/lrucache/cache"
	"github.com/IvanBrykalov/lrucache/internal/config"
	pmet "github.com/IvanBrykalov/lrucache/metrics/prom"
)

func (a *app) benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "run a synthetic use/add workload and report throughput",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "workers", Usage: "number of worker goroutines"},
			&cli.DurationFlag{Name: "duration", Usage: "benchmark duration"},
			&cli.IntFlag{Name: "use-pct", Usage: "share of Use calls [0..100], the rest are Add"},
			&cli.IntFlag{Name: "keys", Usage: "keyspace size"},
			&cli.IntFlag{Name: "preload", Usage: "entries added before the run (0 = capacity/2)"},
			&cli.Int64Flag{Name: "seed", Usage: "random seed"},
			&cli.StringFlag{Name: "metrics-addr", Usage: "serve Prometheus /metrics at addr (e.g. :8080); empty = disabled"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			b := a.cfg.Bench
			if cmd.IsSet("workers") {
				b.Workers = cmd.Int("workers")
			}
			if cmd.IsSet("duration") {
				b.Duration = cmd.Duration("duration")
			}
			if cmd.IsSet("use-pct") {
				b.UsePct = cmd.Int("use-pct")
			}
			if cmd.IsSet("keys") {
				b.Keys = cmd.Int("keys")
			}
			if cmd.IsSet("preload") {
				b.Preload = cmd.Int("preload")
			}
			if cmd.IsSet("seed") {
				b.Seed = cmd.Int64("seed")
			}
			if cmd.IsSet("metrics-addr") {
				b.MetricsAddr = cmd.String("metrics-addr")
			}
			cfg := a.cfg
			cfg.Bench = b
			if err := cfg.Validate(); err != nil {
				return err
			}
			return a.runBench(ctx, cfg.Capacity, b)
		},
	}
}

type benchResult struct {
	ops     uint64
	elapsed time.Duration
	stats   cache.Stats
	length  int
}

func (a *app) runBench(ctx context.Context, capacity int, b config.Bench) error {
	reg := prometheus.NewRegistry()
	metrics := pmet.New(reg, "lru", "bench", nil)

	c, err := a.newCache(capacity, metrics)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	preload := b.Preload
	if preload == 0 {
		preload = capacity / 2
	}
	for i := 0; i < preload; i++ {
		c.Add("k:"+strconv.Itoa(i), "v"+strconv.Itoa(i))
	}

	runCtx, cancel := context.WithTimeout(ctx, b.Duration)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	if b.MetricsAddr != "" {
		if err := serveMetrics(gctx, g, b.MetricsAddr, reg, a.logger); err != nil {
			return err
		}
	}

	var total atomic.Uint64
	keysMax := uint64(b.Keys - 1)
	start := time.Now()
	for w := 0; w < b.Workers; w++ {
		g.Go(func() error {
			// rand.Rand is not goroutine-safe: one source per worker.
			r := rand.New(rand.NewSource(b.Seed + int64(w)*9973))
			var zipf *rand.Zipf
			if keysMax > 0 {
				zipf = rand.NewZipf(r, 1.1, 1.0, keysMax)
			}
			key := func() string {
				if zipf == nil {
					return "k:0"
				}
				return "k:" + strconv.FormatUint(zipf.Uint64(), 10)
			}

			var ops uint64
			defer func() { total.Add(ops) }()
			for {
				select {
				case <-gctx.Done():
					return nil
				default:
				}
				if r.Intn(100) < b.UsePct {
					c.Use(key())
				} else {
					c.Add(key(), "v"+strconv.Itoa(r.Int()))
				}
				ops++
			}
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	a.report(benchResult{
		ops:     total.Load(),
		elapsed: time.Since(start),
		stats:   c.Stats(),
		length:  c.Len(),
	}, capacity, b)
	return nil
}

// serveMetrics binds addr synchronously so a bad address fails the run,
// then serves until ctx is done.
func serveMetrics(ctx context.Context, g *errgroup.Group, addr string, reg *prometheus.Registry, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	logger.Info("lructl: serving metrics", slog.String("addr", ln.Addr().String()))
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return nil
}

func (a *app) report(res benchResult, capacity int, b config.Bench) {
	uses := res.stats.Hits + res.stats.Misses
	hitRate := 0.0
	if uses > 0 {
		hitRate = float64(res.stats.Hits) / float64(uses) * 100
	}
	fmt.Fprintf(a.out, "cap=%d workers=%d keys=%d use=%d%% dur=%v seed=%d\n",
		capacity, b.Workers, b.Keys, b.UsePct, res.elapsed.Round(time.Millisecond), b.Seed)
	fmt.Fprintf(a.out, "ops=%d (%.0f ops/s)  uses=%d  inserts=%d  overwrites=%d\n",
		res.ops, float64(res.ops)/res.elapsed.Seconds(), uses, res.stats.Inserts, res.stats.Overwrites)
	fmt.Fprintf(a.out, "hits=%d  misses=%d  hit-rate=%.2f%%  evictions=%d\n",
		res.stats.Hits, res.stats.Misses, hitRate, res.stats.Evictions)
	fmt.Fprintf(a.out, "Len()=%d\n", res.length)
}

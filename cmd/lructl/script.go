package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/IvanBrykalov/lrucache/internal/script"
)

const demoCapacity = 5

const demoScript = `# five keys fill the cache
add 0 zero
add 1 one
add 2 two
add 3 three
add 4 four
keys
# a sixth key evicts the least recently used one
add 5 five
keys
# touching 2 moves it to the most recently used end
use 2
keys
remove 3
keys
removehead
keys
`

func (a *app) scriptCommand() *cli.Command {
	return &cli.Command{
		Name:      "script",
		Aliases:   []string{"s"},
		Usage:     "run a scripted session (add, use, peek, remove, removehead, keys, len, purge)",
		ArgsUsage: "[file]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			src := a.in
			name := "<stdin>"
			if cmd.Args().Len() > 0 && cmd.Args().First() != "-" {
				name = cmd.Args().First()
				f, err := os.Open(name)
				if err != nil {
					return err
				}
				defer f.Close()
				src = f
			}
			return a.runScript(ctx, name, src, a.cfg.Capacity)
		},
	}
}

func (a *app) demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: fmt.Sprintf("replay the capacity-%d walk-through", demoCapacity),
		Action: func(ctx context.Context, _ *cli.Command) error {
			return a.runScript(ctx, "demo", strings.NewReader(demoScript), demoCapacity)
		},
	}
}

func (a *app) runScript(ctx context.Context, name string, src io.Reader, capacity int) error {
	cmds, err := script.Parse(src)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	c, err := a.newCache(capacity, nil)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	a.logger.Info("lructl: running script",
		slog.String("source", name),
		slog.Int("commands", len(cmds)),
		slog.Int("capacity", capacity))
	if err := script.Run(ctx, c, cmds, a.out); err != nil {
		return err
	}

	st := c.Stats()
	a.logger.Info("lructl: script done",
		slog.Uint64("hits", st.Hits),
		slog.Uint64("misses", st.Misses),
		slog.Uint64("evictions", st.Evictions),
		slog.Uint64("observer_panics", st.ObserverPanics))
	return nil
}

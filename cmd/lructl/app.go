package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/IvanBrykalov/lrucache/cache"
	"github.com/IvanBrykalov/lrucache/internal/config"
	"github.com/IvanBrykalov/lrucache/internal/logging"
	"github.com/IvanBrykalov/lrucache/observe"
)

// app carries what the root Before hook resolved to the subcommands.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg    config.Config
	logger *slog.Logger
	closer io.Closer
}

func newApp(in io.Reader, out, errOut io.Writer) *cli.Command {
	a := &app{in: in, out: out, errOut: errOut}
	return &cli.Command{
		Name:      "lructl",
		Usage:     "drive a bounded LRU cache",
		Version:   Version,
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML or JSON config file",
				Sources: cli.EnvVars("LRUCTL_CONFIG"),
			},
			&cli.IntFlag{
				Name:    "capacity",
				Aliases: []string{"n"},
				Usage:   "cache capacity in entries",
				Sources: cli.EnvVars("LRUCTL_CAPACITY"),
			},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json"},
			&cli.StringFlag{Name: "log-file", Usage: "write logs to a rotated file instead of stderr"},
			&cli.BoolFlag{Name: "events", Usage: "print one line per cache event"},
		},
		Before: a.before,
		After:  a.after,
		Commands: []*cli.Command{
			a.scriptCommand(),
			a.demoCommand(),
			a.benchCommand(),
		},
		// run() reports errors and picks the exit code.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

// before resolves the configuration: defaults, then the config file, then
// flags.
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return ctx, err
		}
	}
	if cmd.IsSet("capacity") {
		cfg.Capacity = cmd.Int("capacity")
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.Log.Format = cmd.String("log-format")
	}
	if cmd.IsSet("log-file") {
		cfg.Log.File = cmd.String("log-file")
	}
	if cmd.IsSet("events") {
		cfg.Events = cmd.Bool("events")
	}
	if err := cfg.Validate(); err != nil {
		return ctx, err
	}

	logger, closer, err := logging.New(cfg.Log, a.errOut)
	if err != nil {
		return ctx, err
	}
	a.cfg, a.logger, a.closer = cfg, logger, closer
	logger.Debug("lructl: configured",
		slog.Int("capacity", cfg.Capacity),
		slog.Bool("events", cfg.Events))
	return ctx, nil
}

func (a *app) after(context.Context, *cli.Command) error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// newCache builds the string cache every command works on. Events go to the
// debug log, and to the output as well when --events is on.
func (a *app) newCache(capacity int, m cache.Metrics) (cache.Cache[string, string], error) {
	obs := observe.Slog[string, string](a.logger, slog.LevelDebug)
	if a.cfg.Events {
		obs = observe.Tee(obs, observe.Lines[string, string](func(line string) {
			fmt.Fprintln(a.out, "  event:", line)
		}))
	}
	return cache.New(cache.Options[string, string]{
		Capacity: capacity,
		Observer: obs,
		Metrics:  m,
		Logger:   a.logger,
	})
}

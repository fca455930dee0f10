// Command lructl drives an LRU cache from the command line.
//
// Usage:
//
//	lructl [global options] <command> [command options]
//
// Commands:
//
//	script [file]  run a scripted session from file or stdin
//	demo           replay the capacity-5 walk-through
//	bench          concurrent mixed workload with a Prometheus endpoint
//
// Exit codes:
//
//	0: success
//	1: runtime failure
//	2: bad configuration or script syntax
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/IvanBrykalov/lrucache/internal/config"
	"github.com/IvanBrykalov/lrucache/internal/script"
)

// Version is set with -ldflags "-X main.Version=...".
var Version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(in, out, errOut).Run(ctx, args); err != nil {
		fmt.Fprintf(errOut, "lructl: %v\n", err)
		if isUsageError(err) {
			return 2
		}
		return 1
	}
	return 0
}

func isUsageError(err error) bool {
	return errors.Is(err, config.ErrInvalid) ||
		errors.Is(err, config.ErrParseFailed) ||
		errors.Is(err, config.ErrUnsupportedFormat) ||
		errors.Is(err, script.ErrSyntax)
}

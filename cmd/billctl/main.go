// Command billctl queries and edits bills on a billbook server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"billbook/internal/cli"
)

const usage = `usage: billctl [-server URL] [-json] <command> [flags]

commands:
  search      list bills with totals
  create      add a bill
  get ID      show one bill
  update ID   replace a bill
  delete ID   remove a bill
  categories  list categories
  watch       print bill change events from AMQP
`

func main() {
	cli.LoadEnvFile()
	cli.SetupLogger(os.Getenv("LOG_LEVEL"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, "billctl:", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

// run parses the global flags and dispatches to a subcommand.
func run(ctx context.Context, args []string, out io.Writer) error {
	g, rest, err := parseGlobal(args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return errUsage
	}

	cmd, rest := rest[0], rest[1:]
	if cmd == "watch" {
		return runWatch(ctx, rest, out)
	}

	c, err := g.client()
	if err != nil {
		return err
	}
	switch cmd {
	case "search":
		return runSearch(ctx, c, g, rest, out)
	case "create":
		return runCreate(ctx, c, g, rest, out)
	case "get":
		return runGet(ctx, c, g, rest, out)
	case "update":
		return runUpdate(ctx, c, g, rest, out)
	case "delete":
		return runDelete(ctx, c, g, rest, out)
	case "categories":
		return runCategories(ctx, c, g, out)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

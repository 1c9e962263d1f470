package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"seedselect/internal/logger"
)

func main() {
	logger.Init()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// run parses args and executes the selected command, writing results to out.
func run(ctx context.Context, args []string, out io.Writer) error {
	var cli CLI

	parser, err := kong.New(&cli,
		kong.Name("seedselect"),
		kong.Description("Deterministic seed-driven subset selection by XOR distance."),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.BindTo(out, (*io.Writer)(nil)),
		kong.ConfigureHelp(kong.HelpOptions{
			Tree: true,
		}),
		kong.UsageOnError(),
	)
	if err != nil {
		return fmt.Errorf("build parser:\n%w", err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cli.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	return kctx.Run()
}

// Command syncfile reads, hashes and copies files with positional I/O.
//
// Usage:
//
//	syncfile [-v] cat [-offset SIZE] [-length SIZE] FILE
//	syncfile [-v] sum [-chunk SIZE] [-workers N] [-json] FILE
//	syncfile [-v] cp [-chunk SIZE] [-workers N] SRC DST
//
// SIZE accepts a plain byte count or a binary unit such as 64k or 4MiB. The
// environment variables SYNCFILE_VERBOSE, SYNCFILE_WORKERS and
// SYNCFILE_CHUNK_SIZE supply defaults for -v, -workers and -chunk.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

// errUsage marks errors caused by bad arguments.
var errUsage = errors.New("usage")

type command struct {
	name    string
	usage   string
	summary string
	run     func(ctx context.Context, e *env, args []string) error
}

var commands = []command{
	{name: "cat", usage: "cat [-offset SIZE] [-length SIZE] FILE", summary: "write a range of FILE to stdout", run: runCat},
	{name: "sum", usage: "sum [-chunk SIZE] [-workers N] [-json] FILE", summary: "print xxhash64 digests of FILE's chunks", run: runSum},
	{name: "cp", usage: "cp [-chunk SIZE] [-workers N] SRC DST", summary: "copy SRC to DST in parallel chunks", run: runCp},
}

// env is what every subcommand runs with.
type env struct {
	cfg    envConfig
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv)
	stop()

	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, lookup LookupFunc) int {
	cfg, err := loadEnv(lookup)
	if err != nil {
		fmt.Fprintf(stderr, "syncfile: %v\n", err)
		return exitUsage
	}

	fs := flag.NewFlagSet("syncfile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	verbose := fs.Bool("v", cfg.verbose, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}

		return exitUsage
	}

	if fs.NArg() == 0 {
		usage(stderr)
		return exitUsage
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	e := &env{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	}

	name := fs.Arg(0)
	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}

		err := cmd.run(ctx, e, fs.Args()[1:])
		switch {
		case err == nil:
			return exitOK
		case errors.Is(err, flag.ErrHelp):
			return exitOK
		case errors.Is(err, errUsage):
			fmt.Fprintf(stderr, "syncfile %s: %v\nusage: syncfile %s\n", cmd.name, err, cmd.usage)
			return exitUsage
		default:
			fmt.Fprintf(stderr, "syncfile %s: %v\n", cmd.name, err)
			return exitFail
		}
	}

	fmt.Fprintf(stderr, "syncfile: unknown command %q\n", name)
	usage(stderr)

	return exitUsage
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: syncfile [-v] <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-44s %s\n", cmd.usage, cmd.summary)
	}
}

// parseArgs parses a subcommand's flags and checks it got want positional
// arguments.
func parseArgs(fs *flag.FlagSet, e *env, args []string, want int) ([]string, error) {
	fs.SetOutput(e.stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}

	if fs.NArg() != want {
		return nil, fmt.Errorf("%w: want %d arguments, got %d", errUsage, want, fs.NArg())
	}

	return fs.Args(), nil
}

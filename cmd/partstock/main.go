package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/erazemk/partstock/internal/config"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. With console set, INFO/WARN go
// to stdout and ERROR goes to stderr. If logPath is non-empty, all levels are
// also written to that file. Without console, only the file is written, or
// nothing at all. Returns a cleanup function that closes the log file (if
// opened).
func setupLogger(logPath string, console bool) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(io.Discard)
	stderrW := io.Writer(io.Discard)
	if console {
		stdoutW, stderrW = os.Stdout, os.Stderr
	}

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		if console {
			stdoutW = io.MultiWriter(os.Stdout, f)
			stderrW = io.MultiWriter(os.Stderr, f)
		} else {
			stdoutW, stderrW = f, f
		}
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

const usage = `Usage: partstock <command> [flags]

Commands:
  serve   run the inventory table service
  key     issue a service key for the table service
  tui     open the inventory front-end

Run "partstock <command> -h" for the flags of a command.
Defaults are read from the environment and from a .env file in the
working directory (PARTSTOCK_DB, PARTSTOCK_ADDR, PARTSTOCK_URL,
PARTSTOCK_KEY, PARTSTOCK_LOG, PARTSTOCK_CORS_ORIGINS, PARTSTOCK_TIMEOUT).
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		os.Exit(cmdServe(cfg, os.Args[2:]))
	case "key":
		os.Exit(cmdKey(cfg, os.Args[2:]))
	case "tui":
		os.Exit(cmdTUI(cfg, os.Args[2:]))
	case "-h", "-help", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

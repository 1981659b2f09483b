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
	"syscall"

	"github.com/erazemk/zaloga/internal/config"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	level  slog.Level
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= lr.level
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		level:  lr.level,
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		level:  lr.level,
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. WARN goes to stdout (INFO too
// when verbose), ERROR goes to stderr. If logPath is non-empty, the same
// records are also written to that file.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath string, verbose bool, stdout, stderr io.Writer) (*slog.Logger, func(), error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	cleanup := func() {}

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdout = io.MultiWriter(stdout, f)
		stderr = io.MultiWriter(stderr, f)
	}

	logger := slog.New(&levelRouter{
		level:  level,
		stdout: slog.NewTextHandler(stdout, opts),
		stderr: slog.NewTextHandler(stderr, opts),
	})
	slog.SetDefault(logger)
	return logger, cleanup, nil
}

const usage = `Usage: zaloga [flags] <command> [args]

Flags:
  -c, -config <path>      config file (yaml, toml or json)
  -d, -db <path>          SQLite database path (default: zaloga.sqlite3)
  -s, -storage <name>     inventory storage: sqlite or redis (default: sqlite)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -v, -verbose            log informational messages
  -h, -help               show this help and exit

Commands:
  init [-u user]                        create the database and login
  login [-u user] [-p password]         start a session
  logout                                end the session
  passwd                                change the password
  item list|show|add|update|delete|find|search|label|image
  stock in|out <barcode> <qty> [-pic name] [-notes text]
  alerts expiry|lowstock
  type list|add|edit|delete
  dept list|add|edit|delete
  report lowstock|expiry|stockin|stockout [-o file.csv]
  report xlsx -o file.xlsx
  dashboard [-year N]
  history [-type in|out] [-n 10]

Environment variables ZALOGA_* override config file values.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses global flags, loads configuration and dispatches the command.
// It returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("zaloga", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var configPath string
	fs.StringVar(&configPath, "config", "", "")
	fs.StringVar(&configPath, "c", "", "")

	var dbPath string
	fs.StringVar(&dbPath, "db", "", "")
	fs.StringVar(&dbPath, "d", "", "")

	var storage string
	fs.StringVar(&storage, "storage", "", "")
	fs.StringVar(&storage, "s", "", "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	var verbose bool
	fs.BoolVar(&verbose, "verbose", false, "")
	fs.BoolVar(&verbose, "v", false, "")

	fs.Usage = func() { fmt.Fprint(stdout, usage) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 1
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if dbPath != "" {
		cfg.DB = dbPath
	}
	if storage != "" {
		cfg.Storage = storage
	}
	if logPath != "" {
		cfg.Log = logPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	logger, closeLog, err := setupLogger(cfg.Log, verbose, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer closeLog()

	a := newApp(cfg, logger, stdin, stdout)
	defer a.close()

	if err := a.dispatch(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

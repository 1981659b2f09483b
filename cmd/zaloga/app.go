package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/redis/go-redis/v9"

	"github.com/erazemk/zaloga/internal/auth"
	"github.com/erazemk/zaloga/internal/cache"
	"github.com/erazemk/zaloga/internal/config"
	"github.com/erazemk/zaloga/internal/db"
	"github.com/erazemk/zaloga/internal/inventory"
	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/store"
)

// app holds the resources opened for a single command.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	in     *bufio.Reader
	out    io.Writer

	db    *sql.DB
	redis *redis.Client
	inv   *inventory.Store
	user  string
}

func newApp(cfg *config.Config, logger *slog.Logger, in io.Reader, out io.Writer) *app {
	return &app{
		cfg:    cfg,
		logger: logger,
		in:     bufio.NewReader(in),
		out:    out,
	}
}

func (a *app) close() {
	if a.redis != nil {
		a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "init":
		return a.cmdInit(ctx, args)
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.cmdLogout(ctx, args)
	case "passwd":
		if err := a.requireSession(ctx); err != nil {
			return err
		}
		return a.cmdPasswd(ctx, args)
	}

	handlers := map[string]func(context.Context, []string) error{
		"item":      a.cmdItem,
		"stock":     a.cmdStock,
		"alerts":    a.cmdAlerts,
		"type":      a.cmdType,
		"dept":      a.cmdDept,
		"report":    a.cmdReport,
		"dashboard": a.cmdDashboard,
		"history":   a.cmdHistory,
	}
	handler, ok := handlers[cmd]
	if !ok {
		return fmt.Errorf("unknown command %q, see zaloga -h", cmd)
	}

	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if err := a.openInventory(ctx); err != nil {
		return err
	}
	return handler(ctx, args)
}

// openDB opens the SQLite database. Unless create is set, the file must
// already exist.
func (a *app) openDB(ctx context.Context, create bool) error {
	if a.db != nil {
		return nil
	}

	if !create && a.cfg.DB != ":memory:" {
		if _, err := os.Stat(a.cfg.DB); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("database %s does not exist, run zaloga init", a.cfg.DB)
		}
	}

	database, err := db.Open(a.cfg.DB)
	if err != nil {
		return err
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return err
	}

	a.db = database
	a.logger.Info("database ready", "path", a.cfg.DB)
	return nil
}

// openInventory loads the inventory from the configured storage backend.
func (a *app) openInventory(ctx context.Context) error {
	if a.inv != nil {
		return nil
	}

	var p inventory.Persister
	switch a.cfg.Storage {
	case config.StorageRedis:
		a.redis = redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		collections := cache.NewCollections(a.redis, a.cfg.Redis.Prefix, a.logger)
		if err := collections.Ping(ctx); err != nil {
			return err
		}
		p = collections
	default:
		if err := a.openDB(ctx, false); err != nil {
			return err
		}
		p = store.NewCollections(a.db)
	}

	inv, err := inventory.Open(ctx, p, inventory.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.inv = inv
	return nil
}

// requireSession checks the saved session token.
func (a *app) requireSession(ctx context.Context) error {
	if err := a.openDB(ctx, false); err != nil {
		return err
	}

	token, err := auth.LoadSession(a.cfg.Session.File)
	if errors.Is(err, auth.ErrNoSession) {
		return errors.New("not logged in, run zaloga login")
	}
	if err != nil {
		return err
	}

	secret, err := store.GetJWTSecret(ctx, a.db)
	if err != nil {
		return err
	}

	claims, err := auth.VerifySession(ctx, secret, token, func(ctx context.Context, jti string) (bool, error) {
		return store.IsTokenRevoked(ctx, a.db, jti)
	})
	if err != nil {
		return fmt.Errorf("session is no longer valid, run zaloga login: %w", err)
	}

	a.user = claims.Subject
	a.logger.Info("session verified", "user", a.user)
	return nil
}

// flags returns a subcommand flag set. Parse errors are reported by run.
func (a *app) flags(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { fmt.Fprintf(a.out, "Usage: zaloga %s\n", usage) }
	return fs
}

// parseArgs parses flags that may appear before, between or after
// positional arguments and returns the positional ones.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// prompt prints label and reads one line from stdin.
func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// lookupItem finds an item by id or barcode.
func (a *app) lookupItem(ref string) (model.Item, error) {
	if item, ok := a.inv.Item(ref); ok {
		return item, nil
	}
	if item, ok := a.inv.FindItemByBarcode(ref); ok {
		return item, nil
	}
	return model.Item{}, fmt.Errorf("%w: %s", inventory.ErrItemNotFound, ref)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func subcommand(args []string, usage string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, fmt.Errorf("missing subcommand, usage: zaloga %s", usage)
	}
	return args[0], args[1:], nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/erazemk/zaloga/internal/auth"
	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/store"
)

// cmdInit creates the database, seeds the catalog and sets up the login
// with a generated password.
func (a *app) cmdInit(ctx context.Context, args []string) error {
	fs := a.flags("init", "init [-u user]")
	var username string
	fs.StringVar(&username, "user", "Admin", "")
	fs.StringVar(&username, "u", "Admin", "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username must not be empty")
	}

	_, statErr := os.Stat(a.cfg.DB)
	created := errors.Is(statErr, os.ErrNotExist)

	password, err := a.initDatabase(ctx, username)
	if err != nil {
		if created && a.db != nil {
			a.db.Close()
			a.db = nil
			os.Remove(a.cfg.DB)
		}
		return err
	}

	a.printInitResult(username, password)
	return nil
}

func (a *app) initDatabase(ctx context.Context, username string) (string, error) {
	if err := a.openDB(ctx, true); err != nil {
		return "", err
	}

	cred, err := store.GetCredential(ctx, a.db)
	if err != nil {
		return "", err
	}
	if cred != nil {
		return "", fmt.Errorf("database %s is already initialized", a.cfg.DB)
	}

	password, err := auth.GeneratePassword(16)
	if err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	err = store.SetCredential(ctx, a.db, model.Credential{
		Username:     username,
		PasswordHash: hash,
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("storing credential: %w", err)
	}

	if _, err := store.GetJWTSecret(ctx, a.db); err != nil {
		return "", err
	}
	if err := a.openInventory(ctx); err != nil {
		return "", err
	}

	return password, nil
}

func (a *app) printInitResult(username, password string) {
	fmt.Fprintf(a.out, "Database created: %s\n", a.cfg.DB)
	fmt.Fprintf(a.out, "Inventory storage: %s\n", a.cfg.Storage)
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Login created:")
	fmt.Fprintf(a.out, "  Username: %s\n", username)
	fmt.Fprintf(a.out, "  Password: %s\n", password)
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Save this password, it cannot be recovered.")
	fmt.Fprintln(a.out, "Change it with zaloga passwd after logging in.")
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := a.flags("login", "login [-u user] [-p password]")
	var username, password string
	fs.StringVar(&username, "user", "", "")
	fs.StringVar(&username, "u", "", "")
	fs.StringVar(&password, "password", "", "")
	fs.StringVar(&password, "p", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.openDB(ctx, false); err != nil {
		return err
	}
	cred, err := store.GetCredential(ctx, a.db)
	if err != nil {
		return err
	}
	if cred == nil {
		return errors.New("no login configured, run zaloga init")
	}

	if username == "" {
		if username, err = a.prompt("Username: "); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = a.prompt("Password: "); err != nil {
			return err
		}
	}

	if err := auth.Authenticate(cred, strings.TrimSpace(username), password); err != nil {
		a.logger.Warn("login failed", "username", username)
		return err
	}

	secret, err := store.GetJWTSecret(ctx, a.db)
	if err != nil {
		return err
	}
	token, err := auth.GenerateToken(secret, cred.Username, a.cfg.Session.TTL)
	if err != nil {
		return err
	}
	if err := auth.SaveSession(a.cfg.Session.File, token); err != nil {
		return err
	}

	if n, err := store.PruneRevokedTokens(ctx, a.db, time.Now()); err != nil {
		a.logger.Error("failed to prune revoked tokens", "error", err)
	} else if n > 0 {
		a.logger.Info("pruned revoked tokens", "count", n)
	}

	fmt.Fprintf(a.out, "Logged in as %s.\n", cred.Username)
	return nil
}

// cmdLogout revokes the saved token and removes the session file.
func (a *app) cmdLogout(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	token, err := auth.LoadSession(a.cfg.Session.File)
	if errors.Is(err, auth.ErrNoSession) {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := a.openDB(ctx, false); err != nil {
		return err
	}
	secret, err := store.GetJWTSecret(ctx, a.db)
	if err != nil {
		return err
	}

	// Expired or foreign tokens are simply discarded.
	if claims, err := auth.ValidateToken(secret, token); err == nil && claims.ExpiresAt != nil {
		if err := store.RevokeToken(ctx, a.db, claims.ID, claims.ExpiresAt.Time); err != nil {
			return err
		}
	}

	if err := auth.ClearSession(a.cfg.Session.File); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *app) cmdPasswd(ctx context.Context, args []string) error {
	fs := a.flags("passwd", "passwd [-old password] [-new password]")
	var current, next string
	fs.StringVar(&current, "old", "", "")
	fs.StringVar(&next, "new", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cred, err := store.GetCredential(ctx, a.db)
	if err != nil {
		return err
	}
	if cred == nil {
		return errors.New("no login configured, run zaloga init")
	}

	if current == "" {
		if current, err = a.prompt("Current password: "); err != nil {
			return err
		}
	}
	if err := auth.Authenticate(cred, cred.Username, current); err != nil {
		return err
	}

	if next == "" {
		if next, err = a.prompt("New password: "); err != nil {
			return err
		}
		repeat, err := a.prompt("Repeat new password: ")
		if err != nil {
			return err
		}
		if repeat != next {
			return errors.New("passwords do not match")
		}
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	cred.PasswordHash = hash
	cred.UpdatedAt = time.Now().UTC()
	if err := store.SetCredential(ctx, a.db, *cred); err != nil {
		return err
	}

	a.logger.Info("password changed", "user", cred.Username)
	fmt.Fprintln(a.out, "Password changed.")
	return nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoSession is returned when no session file exists.
var ErrNoSession = errors.New("not logged in")

// SaveSession writes the session token to path, readable only by the owner.
func SaveSession(path, token string) error {
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// LoadSession reads the session token from path.
func LoadSession(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("reading session file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoSession
	}
	return token, nil
}

// ClearSession removes the session file. A missing file is not an error.
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// ErrSessionRevoked is returned for a token that was logged out.
var ErrSessionRevoked = errors.New("session has been revoked")

// RevocationChecker reports whether the token with the given JTI was revoked.
type RevocationChecker func(ctx context.Context, jti string) (bool, error)

// VerifySession validates token and rejects it if it has been revoked.
func VerifySession(ctx context.Context, secret, token string, revoked RevocationChecker) (*Claims, error) {
	claims, err := ValidateToken(secret, token)
	if err != nil {
		return nil, err
	}
	isRevoked, err := revoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("checking session: %w", err)
	}
	if isRevoked {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// Package cache stores inventory collections in Redis, one string key per
// collection.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces collection keys.
const DefaultPrefix = "zaloga:"

// Collections adapts a Redis client to the inventory persistence interface.
type Collections struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewCollections returns a collection store that keeps each collection
// under prefix+key. Values never expire.
func NewCollections(client *redis.Client, prefix string, logger *slog.Logger) *Collections {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collections{
		client: client,
		prefix: prefix,
		logger: logger.With("component", "cache"),
	}
}

// Ping checks that the server is reachable.
func (c *Collections) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis: %w", err)
	}
	return nil
}

// Load implements inventory.Persister.
func (c *Collections) Load(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.DebugContext(ctx, "collection not stored", "key", key)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return data, true, nil
}

// Save implements inventory.Persister.
func (c *Collections) Save(ctx context.Context, key string, data []byte) error {
	if err := c.client.Set(ctx, c.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	c.logger.DebugContext(ctx, "collection saved", "key", key, "bytes", len(data))
	return nil
}

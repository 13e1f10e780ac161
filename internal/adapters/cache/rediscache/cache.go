// Package rediscache guarda resultados en Redis bajo un namespace versionado.
// Purge incrementa la época: las claves viejas quedan inalcanzables y vencen por TTL.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultPrefix = "pedigree:cache"

// Client es el subconjunto de *redis.Client que usamos.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

type Cache struct {
	client Client
	prefix string
}

func New(client Client, prefix string) *Cache {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Cache{client: client, prefix: prefix}
}

func (c *Cache) epochKey() string { return c.prefix + ":epoch" }

func (c *Cache) epoch(ctx context.Context) (int64, error) {
	n, err := c.client.Get(ctx, c.epochKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (c *Cache) dataKey(epoch int64, key string) string {
	return fmt.Sprintf("%s:%d:%s", c.prefix, epoch, key)
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	e, err := c.epoch(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("rediscache: epoch: %w", err)
	}
	b, err := c.client.Get(ctx, c.dataKey(e, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("rediscache: get: %w", err)
	}
	return b, true, nil
}

func (c *Cache) Version(ctx context.Context) (int64, error) {
	e, err := c.epoch(ctx)
	if err != nil {
		return 0, fmt.Errorf("rediscache: epoch: %w", err)
	}
	return e, nil
}

// Set escribe bajo la época recibida. Si hubo un Purge después de leerla,
// la clave ya no es alcanzable desde Get.
func (c *Cache) Set(ctx context.Context, version int64, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.dataKey(version, key), value, ttl).Err(); err != nil {
		return fmt.Errorf("rediscache: set: %w", err)
	}
	return nil
}

func (c *Cache) Purge(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.epochKey()).Err(); err != nil {
		return fmt.Errorf("rediscache: purge: %w", err)
	}
	return nil
}

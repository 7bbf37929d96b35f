// Package cache keeps rendered public list responses in Redis so repeated
// reads skip the database. Every admin mutation clears it.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	keyPrefix     = "portfolio:list:"
	generationKey = keyPrefix + "generation"

	DefaultTTL = 5 * time.Minute
)

// Connect parses a redis:// URL and verifies the connection with a ping.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info().Str("addr", opts.Addr).Msg("Redis connected")
	return client, nil
}

// ListCache stores response bodies by generation and key. Redis failures
// are logged and treated as misses; the cache never fails a request.
//
// Readers take the generation before loading and store under it, so a list
// loaded before a mutation lands in a generation InvalidateAll has already
// retired. A stale hit is only possible between a mutation's commit and its
// InvalidateAll call.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ListCache{
		client: client,
		ttl:    ttl,
		logger: log.With().Str("component", "listCache").Logger(),
	}
}

// Generation returns the current cache generation. ok is false when Redis
// cannot be read, in which case callers skip the cache entirely.
func (c *ListCache) Generation(ctx context.Context) (int64, bool) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err == redis.Nil {
		return 0, true
	}
	if err != nil {
		c.logger.Warn().Err(err).Msg("cache generation read failed")
		return 0, false
	}
	return gen, true
}

func (c *ListCache) Get(ctx context.Context, gen int64, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, entryKey(gen, key)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return nil, false
	}
	return val, true
}

func (c *ListCache) Set(ctx context.Context, gen int64, key string, body []byte) {
	if err := c.client.Set(ctx, entryKey(gen, key), body, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// InvalidateAll retires the current generation. Entries of older
// generations are never read again and expire with their TTL.
func (c *ListCache) InvalidateAll(ctx context.Context) {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("cache invalidate failed")
	}
}

func entryKey(gen int64, key string) string {
	return fmt.Sprintf("%s%d:%s", keyPrefix, gen, key)
}

// Nop is used when no Redis is configured.
type Nop struct{}

func (Nop) Generation(context.Context) (int64, bool) { return 0, false }
func (Nop) Get(context.Context, int64, string) ([]byte, bool) { return nil, false }
func (Nop) Set(context.Context, int64, string, []byte) {}
func (Nop) InvalidateAll(context.Context) {}

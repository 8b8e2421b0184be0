// Package cache keeps recently loaded collection snapshots in Redis so that
// several replicas do not re-read storage on every request.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gartstein/catalog/internal/catalog/models"
	"github.com/gartstein/catalog/internal/catalog/monitoring"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "catalog:snapshot:"

// Source is the storage the cache sits in front of.
type Source interface {
	Load(ctx context.Context, collection models.Collection) ([]byte, error)
}

// Cache is a read-through snapshot cache. Redis failures never fail a load;
// the cache falls back to the underlying source.
type Cache struct {
	client *redis.Client
	source Source
	ttl    time.Duration
	logger *zap.Logger
}

// New wraps source with a Redis cache whose entries live for ttl.
func New(client *redis.Client, source Source, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{
		client: client,
		source: source,
		ttl:    ttl,
		logger: logger.Named("snapshot_cache"),
	}
}

// NewClient creates a Redis client from a redis:// URL or a plain host:port address.
func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		opts = &redis.Options{Addr: url}
	}
	opts.MaxRetries = 3

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// Key is the Redis key holding the snapshot of collection.
func Key(collection models.Collection) string {
	return keyPrefix + string(collection)
}

// Load returns the cached snapshot, reading through to the source on a miss.
func (c *Cache) Load(ctx context.Context, collection models.Collection) ([]byte, error) {
	key := Key(collection)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		monitoring.TrackCacheLookup(string(collection), monitoring.CacheHit)
		return data, nil
	case errors.Is(err, redis.Nil):
		monitoring.TrackCacheLookup(string(collection), monitoring.CacheMiss)
	default:
		monitoring.TrackCacheLookup(string(collection), monitoring.CacheError)
		c.logger.Warn("Snapshot cache read failed",
			zap.Error(err),
			zap.String("collection", string(collection)),
		)
	}

	data, err = c.source.Load(ctx, collection)
	if err != nil {
		return nil, err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Snapshot cache write failed",
			zap.Error(err),
			zap.String("collection", string(collection)),
		)
	}
	return data, nil
}

// Invalidate drops the cached snapshot of collection.
func (c *Cache) Invalidate(ctx context.Context, collection models.Collection) error {
	if err := c.client.Del(ctx, Key(collection)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate %s: %w", collection, err)
	}
	c.logger.Info("Snapshot cache invalidated", zap.String("collection", string(collection)))
	return nil
}

// HealthCheck pings Redis.
func (c *Cache) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

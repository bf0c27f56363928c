package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

// RedisConfig holds Redis connection settings for the cache
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisSnapshotCache implements catalog.SnapshotCache using Redis
type RedisSnapshotCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisSnapshotCacheOption is a functional option for configuring the cache
type RedisSnapshotCacheOption func(*RedisSnapshotCache)

// WithRedisTTL sets the default TTL
func WithRedisTTL(ttl time.Duration) RedisSnapshotCacheOption {
	return func(c *RedisSnapshotCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithRedisLogger sets the logger for the cache
func WithRedisLogger(logger *zap.Logger) RedisSnapshotCacheOption {
	return func(c *RedisSnapshotCache) {
		c.logger = logger
	}
}

// NewRedisSnapshotCache connects to Redis and creates the cache
func NewRedisSnapshotCache(cfg RedisConfig, opts ...RedisSnapshotCacheOption) (*RedisSnapshotCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := NewRedisSnapshotCacheWithClient(client, opts...)
	c.ownsClient = true
	return c, nil
}

// NewRedisSnapshotCacheWithClient creates a cache over an existing client.
// The caller keeps ownership of the client.
func NewRedisSnapshotCacheWithClient(client *redis.Client, opts ...RedisSnapshotCacheOption) *RedisSnapshotCache {
	c := &RedisSnapshotCache{
		client: client,
		ttl:    defaultSnapshotTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves a snapshot from cache
func (c *RedisSnapshotCache) Get(ctx context.Context, storeID, productID int64) (*catalog.Snapshot, error) {
	key := snapshotKey(storeID, productID)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get snapshot from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to get snapshot from cache: %w", err)
	}

	snapshot, err := decodeSnapshot(data)
	if err != nil {
		c.logger.Warn("Dropping corrupted snapshot", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, key)
		return nil, err
	}
	return snapshot, nil
}

// Set stores a snapshot in cache
func (c *RedisSnapshotCache) Set(ctx context.Context, snapshot catalog.Snapshot, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}
	key := snapshotKey(snapshot.Product.StoreID, snapshot.Product.ID)

	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set snapshot in cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to set snapshot in cache: %w", err)
	}
	return nil
}

// Delete removes a snapshot from cache
func (c *RedisSnapshotCache) Delete(ctx context.Context, storeID, productID int64) error {
	if err := c.client.Del(ctx, snapshotKey(storeID, productID)).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot from cache: %w", err)
	}
	return nil
}

// Ping checks the Redis connection
func (c *RedisSnapshotCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the client if the cache created it
func (c *RedisSnapshotCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

func encodeSnapshot(s catalog.Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (*catalog.Snapshot, error) {
	var s catalog.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &s, nil
}

// Ensure RedisSnapshotCache implements catalog.SnapshotCache
var _ catalog.SnapshotCache = (*RedisSnapshotCache)(nil)

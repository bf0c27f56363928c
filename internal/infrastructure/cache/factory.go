package cache

import (
	"fmt"
	"strings"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Cache backends accepted in catalog.cache_backend
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// SnapshotCacheFactory creates snapshot caches based on configuration
type SnapshotCacheFactory struct {
	backend               string
	catalogCfg            config.CatalogConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SnapshotCacheFactoryOption is a functional option for configuring the factory
type SnapshotCacheFactoryOption func(*SnapshotCacheFactory)

// WithLogger sets the logger for the factory and the caches it creates
func WithLogger(logger *zap.Logger) SnapshotCacheFactoryOption {
	return func(f *SnapshotCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the
// in-memory cache. Default is true.
func WithInMemoryFallback(allow bool) SnapshotCacheFactoryOption {
	return func(f *SnapshotCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSnapshotCacheFactory creates a new factory
func NewSnapshotCacheFactory(catalogCfg config.CatalogConfig, redisCfg config.RedisConfig, opts ...SnapshotCacheFactoryOption) *SnapshotCacheFactory {
	f := &SnapshotCacheFactory{
		backend:               strings.ToLower(strings.TrimSpace(catalogCfg.CacheBackend)),
		catalogCfg:            catalogCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create builds the configured cache and reports the backend actually in use.
// Returns a nil cache for the "none" backend.
func (f *SnapshotCacheFactory) Create() (catalog.SnapshotCache, string, error) {
	switch f.backend {
	case "", BackendNone:
		return nil, BackendNone, nil
	case BackendMemory:
		return f.createInMemory(), BackendMemory, nil
	case BackendRedis:
		c, err := NewRedisSnapshotCache(RedisConfig{
			Host:     f.redisConfig.Host,
			Port:     f.redisConfig.Port,
			Password: f.redisConfig.Password,
			DB:       f.redisConfig.DB,
		}, WithRedisTTL(f.catalogCfg.CacheTTL), WithRedisLogger(f.logger))
		if err == nil {
			f.logger.Info("using Redis snapshot cache", zap.String("addr", f.redisConfig.Addr()))
			return c, BackendRedis, nil
		}
		if !f.allowInMemoryFallback {
			return nil, "", fmt.Errorf("redis snapshot cache unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory snapshot cache", zap.Error(err))
		return f.createInMemory(), BackendMemory, nil
	default:
		return nil, "", fmt.Errorf("unknown cache backend %q", f.backend)
	}
}

func (f *SnapshotCacheFactory) createInMemory() *InMemorySnapshotCache {
	return NewInMemorySnapshotCache(WithInMemoryTTL(f.catalogCfg.CacheTTL), WithInMemoryLogger(f.logger))
}

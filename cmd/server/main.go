package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Storefront API
//	@version		1.0
//	@description	Read-only storefront catalog: product pages, availability and listings
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Store token. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Telemetry: traces, metrics, OTLP logs and profiling; all no-op when disabled
	tel, err := telemetry.Setup(context.Background(), cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	logLevel, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		logLevel = zapcore.InfoLevel
	}
	log = tel.Logs.Bridge(log, logLevel)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	// Database with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Database.SlowThreshold))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
		DBName:     cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to enable database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Snapshot cache; nil when disabled
	snapshotCache, cacheBackend, err := cache.NewSnapshotCacheFactory(cfg.Catalog, cfg.Redis, cache.WithLogger(log)).Create()
	if err != nil {
		log.Fatal("Failed to create snapshot cache", zap.Error(err))
	}
	if closer, ok := snapshotCache.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Error("Error closing snapshot cache", zap.Error(err))
			}
		}()
	}

	formatter, err := catalogapp.NewPriceFormatter(cfg.Catalog.Locale, cfg.Catalog.Currency, cfg.Catalog.CurrencySymbol)
	if err != nil {
		log.Fatal("Invalid price format settings", zap.Error(err))
	}

	serviceOpts := []catalogapp.ProductServiceOption{
		catalogapp.WithLogger(log.Named("catalog")),
		catalogapp.WithMaxPageSize(cfg.Catalog.MaxPageSize),
		catalogapp.WithRelatedLimits(cfg.Catalog.RelatedLimit, cfg.Catalog.MaxRelatedLimit),
		catalogapp.WithMetrics(tel.Catalog),
	}
	if snapshotCache != nil {
		serviceOpts = append(serviceOpts, catalogapp.WithSnapshotCache(snapshotCache, cfg.Catalog.CacheTTL))
	}
	productService := catalogapp.NewProductService(
		persistence.NewGormProductRepository(db.DB),
		persistence.NewGormCombinationRepository(db.DB),
		formatter,
		serviceOpts...,
	)

	// Evict cached snapshots when catalog management announces a change
	if snapshotCache != nil && cfg.Catalog.InvalidationChannel != "" {
		stop := startInvalidation(cfg, productService, log)
		defer stop()
	}

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
	}

	engine, err := router.NewEngine(router.EngineConfig{
		HTTP:   cfg.HTTP,
		Logger: log,
		StoreScope: middleware.StoreScope(middleware.StoreScopeConfig{
			JWTService:       auth.NewJWTService(cfg.JWT),
			AllowStoreHeader: cfg.JWT.AllowStoreHeader,
			Logger:           log,
		}),
		RateLimiter: limiter,
		ServiceName: tracingServiceName(cfg.Telemetry),
		Meter:       tel.Meter,
	}, router.Handlers{
		Product: handler.NewProductHandler(productService),
		Health:  handler.NewHealthHandler(db, cacheBackend, version),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

func tracingServiceName(cfg config.TelemetryConfig) string {
	if !cfg.Enabled {
		return ""
	}
	return cfg.ServiceName
}

// startInvalidation relays product change events from Redis to the snapshot
// cache. A failed subscription is logged; snapshots then expire by TTL only.
func startInvalidation(cfg *config.Config, invalidator catalogapp.ProductInvalidator, log *zap.Logger) func() {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	bus := event.NewInMemoryEventBus(log.Named("events"))
	bus.Subscribe(catalogapp.NewSnapshotInvalidationHandler(invalidator, log.Named("invalidation")))
	_ = bus.Start(context.Background())

	subscriber := event.NewRedisSubscriber(client, cfg.Catalog.InvalidationChannel,
		event.NewCatalogEventSerializer(), bus, log.Named("events"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := subscriber.Start(ctx); err != nil {
		log.Warn("Catalog event subscription unavailable, cached snapshots expire by TTL only", zap.Error(err))
		_ = client.Close()
		return func() {}
	}

	return func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := subscriber.Stop(stopCtx); err != nil {
			log.Error("Error stopping catalog event subscriber", zap.Error(err))
		}
		_ = bus.Stop(stopCtx)
		_ = client.Close()
	}
}

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers are the HTTP handlers mounted by NewEngine
type Handlers struct {
	Product *handler.ProductHandler
	Health  *handler.HealthHandler
}

// EngineConfig wires the middleware chain
type EngineConfig struct {
	HTTP   config.HTTPConfig
	Logger *zap.Logger
	// StoreScope guards every catalog route
	StoreScope gin.HandlerFunc
	// RateLimiter is applied per client IP when non-nil
	RateLimiter *middleware.RateLimiter
	// ServiceName names server spans; tracing is off when empty
	ServiceName string
	Meter       *telemetry.MeterProvider
}

// NewEngine builds the gin engine with global middleware, health checks and
// the store-scoped catalog routes under /api/v1
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}
	engine.HandleMethodNotAllowed = true

	engine.Use(middleware.RequestID())
	if cfg.ServiceName != "" {
		engine.Use(middleware.Tracing(cfg.ServiceName), middleware.SpanAttributes())
	}
	engine.Use(
		middleware.HTTPMetrics(cfg.Meter),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORS(cfg.HTTP),
	)
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, "Method not allowed", middleware.GetRequestID(c)))
	})

	engine.GET("/health", h.Health.Health)

	r := NewRouter(engine)
	r.Register(CatalogRoutes(h.Product, cfg.StoreScope))
	api := r.Setup()
	api.GET("/health", h.Health.Health)

	return engine, nil
}

// CatalogRoutes declares the storefront product routes
func CatalogRoutes(h *handler.ProductHandler, storeScope gin.HandlerFunc) *DomainGroup {
	products := NewDomainGroup("catalog", "/products")
	if storeScope != nil {
		products.Use(storeScope)
	}
	products.
		GET("", h.List).
		GET("/category/:category_id", h.ListByCategory).
		GET("/:id", h.Get).
		GET("/:id/availability", h.GetAvailability).
		GET("/:id/related", h.GetRelated)
	return products
}

package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request. Health probes are not traced.
func Tracing(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName, otelgin.WithFilter(func(r *http.Request) bool {
		return !strings.HasSuffix(r.URL.Path, "/health")
	}))
}

// SpanAttributes tags the active span. It must run inside Tracing so the span
// is still open after c.Next.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		if id := GetRequestID(c); id != "" {
			span.SetAttributes(telemetry.AttrRequestID.String(id))
		}
		c.Header("X-Trace-ID", span.SpanContext().TraceID().String())

		c.Next()

		if storeID, ok := c.Get(logger.GinStoreIDKey); ok {
			if id, ok := storeID.(int64); ok {
				span.SetAttributes(telemetry.AttrStoreID.Int64(id))
			}
		}
	}
}

// HTTPMetrics records request count and latency per route. Returns a
// pass-through handler when the meter provider is disabled.
func HTTPMetrics(mp *telemetry.MeterProvider) gin.HandlerFunc {
	if !mp.IsEnabled() {
		return func(c *gin.Context) { c.Next() }
	}
	return httpMetrics(mp.Meter("storefront/http"))
}

func httpMetrics(meter metric.Meter) gin.HandlerFunc {
	requests, errC := telemetry.NewCounter(meter, "http_server_request_total", "Total number of HTTP requests", "{request}")
	duration, errH := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Description: "HTTP request latency in seconds",
		Unit:        "s",
		Boundaries:  telemetry.HTTPDurationBuckets,
	})
	if errC != nil || errH != nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx := c.Request.Context()
		method := telemetry.AttrHTTPMethod.String(c.Request.Method)
		path := telemetry.AttrHTTPRoute.String(route)
		requests.Inc(ctx, method, path, telemetry.AttrHTTPStatusCode.String(strconv.Itoa(c.Writer.Status())))
		duration.RecordDuration(ctx, time.Since(start), method, path)
	}
}

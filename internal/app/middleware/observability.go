package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/negocios-templui/internal/app/observability/metrics"
)

// OTELGinMiddleware starts a server span per request.
func OTELGinMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName,
		otelgin.WithFilter(func(r *http.Request) bool {
			return !strings.HasPrefix(r.URL.Path, "/assets/") && r.URL.Path != "/healthz"
		}),
	)
}

// MetricsMiddleware records request count and latency by route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m := metrics.Get()
		ctx := c.Request.Context()
		m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", route),
			attribute.String("status", strconv.Itoa(c.Writer.Status())),
		))
		m.HTTPRequestDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", route),
		))
	}
}

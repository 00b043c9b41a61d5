package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/FACorreiaa/negocios-templui/internal/app/middleware"
	"github.com/FACorreiaa/negocios-templui/internal/routes"
)

// SessionName is the BFF's own session cookie (visitor id and flashes).
const SessionName = "negocios_session"

// SetupRouter configures and returns the Gin router with all middleware and routes
func SetupRouter(deps routes.Dependencies) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(ginzap.GinzapWithConfig(deps.Logger, &ginzap.Config{
		UTC:        true,
		TimeFormat: time.RFC3339,
		Context:    zapContextFunc(),
		SkipPaths:  []string{"/healthz"},
	}))
	r.Use(ginzap.RecoveryWithZap(deps.Logger, true))
	r.Use(middleware.OTELGinMiddleware(deps.Config.Observability.ServiceName))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())

	store := cookie.NewStore([]byte(deps.Config.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(deps.Config.StateTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(SessionName, store))

	routes.Setup(r, deps)

	return r
}

// zapContextFunc adds request correlation fields to the access log. Request
// bodies are never logged: they carry passwords and chat text.
func zapContextFunc() ginzap.Fn {
	return func(c *gin.Context) []zapcore.Field {
		fields := []zapcore.Field{}

		if requestID := c.Writer.Header().Get("X-Request-Id"); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}

		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			fields = append(fields,
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)
		}

		if hxTarget := c.GetHeader("HX-Target"); hxTarget != "" {
			fields = append(fields, zap.String("hx_target", hxTarget))
		}

		return fields
	}
}

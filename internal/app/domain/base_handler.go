package domain

import (
	"context"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/negocios-templui/internal/app/components/chatbot"
	"github.com/FACorreiaa/negocios-templui/internal/app/components/toast"
	"github.com/FACorreiaa/negocios-templui/internal/app/middleware"
	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	"github.com/FACorreiaa/negocios-templui/internal/app/observability/metrics"
	"github.com/FACorreiaa/negocios-templui/internal/app/pages"
	"github.com/FACorreiaa/negocios-templui/internal/app/view"
	"github.com/FACorreiaa/negocios-templui/internal/app/visitor"
	"github.com/FACorreiaa/negocios-templui/internal/pkg/config"
)

type BaseHandler struct {
	Logger        *zap.Logger
	ImageBaseURL  string
	SessionCookie string
}

func NewBaseHandler(cfg *config.Config, logger *zap.Logger) *BaseHandler {
	return &BaseHandler{
		Logger:        logger,
		ImageBaseURL:  cfg.Upstream.ImageBaseURL,
		SessionCookie: cfg.Upstream.SessionCookie,
	}
}

func (h *BaseHandler) newLayoutData(c *gin.Context, title, activeNav string, content templ.Component) models.LayoutTempl {
	user := middleware.GetUserFromContext(c)
	nav := models.OfflineNav
	if user != nil {
		nav = models.MainNav
	}
	transcript := visitor.FromContext(c).Transcript()
	return models.LayoutTempl{
		Title:     title,
		Content:   content,
		Nav:       nav,
		ActiveNav: activeNav,
		User:      user,
		PageID:    visitor.CurrentPage(c).PageID(),
		Widgets:   chatbot.Widget(transcript.IsOpen(), view.ChatEntries(transcript.Messages())),
		Flash:     h.TakeFlashes(c),
	}
}

// Render writes component with status, recording how long rendering took.
func (h *BaseHandler) Render(c *gin.Context, status int, component templ.Component) {
	start := time.Now()
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	err := component.Render(c.Request.Context(), c.Writer)
	metrics.Get().TemplateRenderDuration.Record(context.WithoutCancel(c.Request.Context()), time.Since(start).Seconds())
	if err != nil {
		h.Logger.Error("Failed to render component",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		_ = c.Error(err)
	}
}

// RenderPage renders content alone for HTMX requests and inside the full
// layout otherwise.
func (h *BaseHandler) RenderPage(c *gin.Context, title, activeNav string, content templ.Component) {
	if IsHTMX(c) {
		h.Render(c, http.StatusOK, content)
		return
	}
	h.Render(c, http.StatusOK, pages.LayoutPage(h.newLayoutData(c, title, activeNav, content)))
}

// Notify responds with toasts appended out of band to the toast container.
func (h *BaseHandler) Notify(c *gin.Context, notifications ...models.Notification) {
	h.Render(c, http.StatusOK, toast.OOB(notifications...))
}

// UpstreamContext is the context for business API calls made on behalf of
// this request.
func (h *BaseHandler) UpstreamContext(c *gin.Context) context.Context {
	return middleware.UpstreamContext(c, h.SessionCookie)
}

// DropStale answers a response that lost the race against a newer request
// for the same target, leaving the page untouched.
func (h *BaseHandler) DropStale(c *gin.Context, target string) {
	metrics.Inc(c.Request.Context(), metrics.Get().StaleResponsesDropped, "target", target)
	h.Logger.Debug("Dropping stale response", zap.String("target", target))
	c.Header("HX-Reswap", "none")
	c.Status(http.StatusNoContent)
}

func IsHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/negocios-templui/internal/app/apiclient"
)

// UpstreamContext returns the request context carrying the browser's
// upstream session cookie, so the business API sees the logged in user.
func UpstreamContext(c *gin.Context, cookieName string) context.Context {
	ctx := c.Request.Context()
	if cookieName == "" {
		return ctx
	}
	value, err := c.Cookie(cookieName)
	if err != nil || value == "" {
		return ctx
	}
	return apiclient.WithSession(ctx, []*http.Cookie{{Name: cookieName, Value: value}})
}

package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FACorreiaa/negocios-templui/internal/app/visitor"
)

const visitorSessionKey = "visitor_id"

// VisitorMiddleware gives every browser a stable visitor id kept in the
// session cookie and attaches its UI state to the request.
func VisitorMiddleware(store *visitor.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, _ := session.Get(visitorSessionKey).(string)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			session.Set(visitorSessionKey, id)
			if err := session.Save(); err != nil {
				logger.Warn("Failed to save visitor session", zap.Error(err))
			}
		}

		visitor.Attach(c, store.For(id))
		c.Next()
	}
}

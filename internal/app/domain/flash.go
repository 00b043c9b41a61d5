package domain

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/FACorreiaa/negocios-templui/internal/app/models"
)

// Flash keeps n in the session until the next full page render.
func (h *BaseHandler) Flash(c *gin.Context, n models.Notification) {
	raw, err := json.Marshal(n)
	if err != nil {
		h.Logger.Warn("Failed to encode flash", zap.Error(err))
		return
	}
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return
	}
	session := sessions.Default(c)
	session.AddFlash(string(raw))
	if err := session.Save(); err != nil {
		h.Logger.Warn("Failed to save flash", zap.Error(err))
	}
}

// TakeFlashes returns and clears the stored notifications.
func (h *BaseHandler) TakeFlashes(c *gin.Context) []models.Notification {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil
	}
	session := sessions.Default(c)
	stored := session.Flashes()
	if len(stored) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		h.Logger.Warn("Failed to clear flashes", zap.Error(err))
	}

	out := make([]models.Notification, 0, len(stored))
	for _, v := range stored {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var n models.Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

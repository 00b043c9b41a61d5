package chat

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/negocios-templui/internal/app/components/chatbot"
	"github.com/FACorreiaa/negocios-templui/internal/app/domain"
	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	"github.com/FACorreiaa/negocios-templui/internal/app/observability/metrics"
	"github.com/FACorreiaa/negocios-templui/internal/app/view"
	"github.com/FACorreiaa/negocios-templui/internal/app/visitor"
)

// Assistant answers chat messages.
type Assistant interface {
	Chat(ctx context.Context, message string) (*models.ChatReply, error)
}

type MessageRequest struct {
	Message string `form:"message"`
}

type Handlers struct {
	*domain.BaseHandler
	api Assistant
}

func NewHandlers(base *domain.BaseHandler, api Assistant) *Handlers {
	return &Handlers{BaseHandler: base, api: api}
}

func (h *Handlers) Toggle(c *gin.Context) {
	transcript := visitor.FromContext(c).Transcript()
	open := transcript.Toggle()
	h.renderPanel(c, open, transcript)
}

func (h *Handlers) Close(c *gin.Context) {
	transcript := visitor.FromContext(c).Transcript()
	transcript.Close()
	h.renderPanel(c, false, transcript)
}

func (h *Handlers) renderPanel(c *gin.Context, open bool, transcript *visitor.Transcript) {
	h.Render(c, http.StatusOK, chatbot.Panel(open, view.ChatEntries(transcript.Messages())))
}

// Messages sends the visitor's message to the assistant and returns the
// new transcript entries, to be appended to the message list.
func (h *Handlers) Messages(c *gin.Context) {
	var req MessageRequest
	_ = c.ShouldBind(&req)
	text := strings.TrimSpace(req.Message)
	if text == "" {
		c.Status(http.StatusNoContent)
		return
	}

	transcript := visitor.FromContext(c).Transcript()
	added := transcript.Append(models.ChatMessage{Sender: models.SenderUser, Text: text})

	botMsg := models.ChatMessage{Sender: models.SenderBot, Text: view.ChatUnavailable}
	result := "error"
	reply, err := h.api.Chat(h.UpstreamContext(c), text)
	switch {
	case err != nil:
		h.Logger.Warn("Chat assistant unavailable", zap.Error(err))
	case reply == nil:
		h.Logger.Warn("Chat assistant returned no reply")
	default:
		botMsg = view.BotReply(*reply)
		result = "ok"
	}
	metrics.Inc(c.Request.Context(), metrics.Get().ChatMessagesTotal, "result", result)

	added = append(added, transcript.Append(botMsg)...)
	h.Render(c, http.StatusOK, chatbot.Entries(view.ChatEntries(added)))
}

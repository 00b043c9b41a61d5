package ratings

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/negocios-templui/internal/app/apiclient"
	"github.com/FACorreiaa/negocios-templui/internal/app/domain"
	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	"github.com/FACorreiaa/negocios-templui/internal/app/observability/metrics"
)

const (
	ThanksMessage       = "¡Gracias por tu valoración!"
	InvalidScoreMessage = "La puntuación debe estar entre 1 y 5."
	FailedMessage       = "No se pudo registrar la valoración."
)

// Rater submits ratings to the business API.
type Rater interface {
	Rate(ctx context.Context, rating models.Rating) (string, error)
}

type RatingRequest struct {
	BusinessID string `form:"negocio_id" binding:"required"`
	Score      string `form:"puntuacion" binding:"required"`
}

type Handlers struct {
	*domain.BaseHandler
	api Rater
}

func NewHandlers(base *domain.BaseHandler, api Rater) *Handlers {
	return &Handlers{BaseHandler: base, api: api}
}

// Rate submits one star rating. On success the page is reloaded so the new
// ranking and recommendations show, and the thank-you toast survives the
// reload as a flash.
func (h *Handlers) Rate(c *gin.Context) {
	var req RatingRequest
	if err := c.ShouldBind(&req); err != nil {
		h.Logger.Warn("Invalid rating request", zap.Error(err))
		h.Notify(c, models.Error(InvalidScoreMessage))
		return
	}
	score, err := strconv.Atoi(req.Score)
	rating := models.Rating{BusinessID: models.BusinessID(req.BusinessID), Score: score}
	if err != nil || !rating.Valid() {
		h.Logger.Warn("Rejected rating",
			zap.String("negocio_id", req.BusinessID),
			zap.String("puntuacion", req.Score))
		metrics.Inc(c.Request.Context(), metrics.Get().RatingsSubmittedTotal, "result", "invalid")
		h.Notify(c, models.Error(InvalidScoreMessage))
		return
	}

	if _, err := h.api.Rate(h.UpstreamContext(c), rating); err != nil {
		h.Logger.Warn("Rating failed",
			zap.String("negocio_id", req.BusinessID),
			zap.Int("puntuacion", score),
			zap.Error(err))
		metrics.Inc(c.Request.Context(), metrics.Get().RatingsSubmittedTotal, "result", "error")
		h.Notify(c, models.Error(apiclient.UserMessage(err, FailedMessage)))
		return
	}

	metrics.Inc(c.Request.Context(), metrics.Get().RatingsSubmittedTotal, "result", "ok")
	thanks := models.Success(ThanksMessage)
	h.Flash(c, thanks)
	c.Header("HX-Refresh", "true")
	h.Notify(c, thanks)
}

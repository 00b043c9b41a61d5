package recommendations

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/negocios-templui/internal/app/components/business"
	"github.com/FACorreiaa/negocios-templui/internal/app/domain"
	"github.com/FACorreiaa/negocios-templui/internal/app/domain/maps"
	"github.com/FACorreiaa/negocios-templui/internal/app/middleware"
	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	"github.com/FACorreiaa/negocios-templui/internal/app/sequence"
	"github.com/FACorreiaa/negocios-templui/internal/app/view"
	"github.com/FACorreiaa/negocios-templui/internal/app/visitor"
)

type Handlers struct {
	*domain.BaseHandler
	fetcher *Fetcher
}

func NewHandlers(base *domain.BaseHandler, fetcher *Fetcher) *Handlers {
	return &Handlers{BaseHandler: base, fetcher: fetcher}
}

// Recommendations renders the recommendations grid and sends the same list
// to the visitor's map.
func (h *Handlers) Recommendations(c *gin.Context) {
	kind := models.ParseRecommendationType(c.Query("type"))
	query := c.Query("query")

	switch kind {
	case models.BySearch, models.ByCategory:
		query = NormalizeTerm(query)
		if query == "" {
			c.Header("HX-Reswap", "none")
			c.Status(http.StatusNoContent)
			return
		}
	default:
		if query == "" {
			query = middleware.GetUserIDFromContext(c)
		}
	}

	page := visitor.CurrentPage(c)
	ticket := page.Issue(sequence.Recommendations)

	result := h.fetcher.GetRecommendations(h.UpstreamContext(c), query, kind)
	if !page.IsLatest(sequence.Recommendations, ticket) {
		h.DropStale(c, string(sequence.Recommendations))
		return
	}

	if result.Source == SourceNone {
		h.Render(c, http.StatusOK, business.Grid(view.MessageGrid(view.RecommendationsFailed)))
		return
	}

	if update, ok := page.MapAdapter().AddMarkersToMap(result.Businesses); ok {
		header, err := maps.TriggerHeader(update)
		if err != nil {
			h.Logger.Warn("Failed to encode map markers", zap.Error(err))
		} else {
			c.Header("HX-Trigger", header)
		}
	}

	h.Render(c, http.StatusOK, business.Grid(view.BusinessCards(result.Businesses, h.ImageBaseURL)))
}

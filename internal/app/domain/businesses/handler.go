package businesses

import (
	"context"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/negocios-templui/internal/app/components/business"
	"github.com/FACorreiaa/negocios-templui/internal/app/components/pagination"
	"github.com/FACorreiaa/negocios-templui/internal/app/domain"
	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	"github.com/FACorreiaa/negocios-templui/internal/app/sequence"
	"github.com/FACorreiaa/negocios-templui/internal/app/view"
	"github.com/FACorreiaa/negocios-templui/internal/app/visitor"
)

// Lister pages through every business.
type Lister interface {
	Businesses(ctx context.Context, page, limit int) (*models.BusinessPage, error)
}

type Handlers struct {
	*domain.BaseHandler
	api      Lister
	pageSize int
}

func NewHandlers(base *domain.BaseHandler, api Lister, pageSize int) *Handlers {
	return &Handlers{BaseHandler: base, api: api, pageSize: pageSize}
}

// Businesses renders one page of the directory and swaps the pagination
// control out of band.
func (h *Handlers) Businesses(c *gin.Context) {
	page := parsePage(c.Query("page"))

	pageLoad := visitor.CurrentPage(c)
	ticket := pageLoad.Issue(sequence.Businesses)

	result, err := h.api.Businesses(h.UpstreamContext(c), page, h.pageSize)
	if !pageLoad.IsLatest(sequence.Businesses, ticket) {
		h.DropStale(c, string(sequence.Businesses))
		return
	}
	if err != nil {
		h.Logger.Error("Failed to load businesses", zap.Int("page", page), zap.Error(err))
		h.Render(c, http.StatusOK, business.Grid(view.MessageGrid(view.BusinessesFailed)))
		return
	}

	current := result.CurrentPage
	if current <= 0 {
		current = page
	}
	h.Render(c, http.StatusOK, templ.Join(
		business.Grid(view.BusinessCards(result.Businesses, h.ImageBaseURL)),
		pagination.Pagination(view.Pagination(result.TotalPages, current), true),
	))
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

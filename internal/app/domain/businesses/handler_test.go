package businesses

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/negocios-templui/internal/app/domain"
	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	"github.com/FACorreiaa/negocios-templui/internal/app/sequence"
	"github.com/FACorreiaa/negocios-templui/internal/app/view"
	"github.com/FACorreiaa/negocios-templui/internal/app/visitor"
	"github.com/FACorreiaa/negocios-templui/internal/pkg/config"
)

type fakeLister struct {
	page     *models.BusinessPage
	err      error
	gotPage  int
	gotLimit int
	onCall   func()
}

func (f *fakeLister) Businesses(_ context.Context, page, limit int) (*models.BusinessPage, error) {
	f.gotPage, f.gotLimit = page, limit
	if f.onCall != nil {
		f.onCall()
	}
	return f.page, f.err
}

func setupRouter(t *testing.T, api *fakeLister) (*gin.Engine, *visitor.State) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{StateTTL: time.Minute, PageSize: 12}
	state := visitor.NewStore(cfg, zap.NewNop()).For("visitor-1")
	h := NewHandlers(domain.NewBaseHandler(cfg, zap.NewNop()), api, cfg.PageSize)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		visitor.Attach(c, state)
		c.Next()
	})
	r.GET("/businesses", h.Businesses)
	return r, state
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("HX-Request", "true")
	r.ServeHTTP(w, req)
	return w
}

func TestBusinessesRendersGridAndPagination(t *testing.T) {
	api := &fakeLister{page: &models.BusinessPage{
		Businesses:  []models.Business{{ID: "1", Name: "Uno"}, {ID: "2", Name: "Dos"}},
		TotalPages:  3,
		CurrentPage: 2,
	}}
	r, _ := setupRouter(t, api)

	w := get(r, "/businesses?page=2")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, api.gotPage)
	assert.Equal(t, 12, api.gotLimit)

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Find(".business-card").Length())

	pager := doc.Find("#businesses-pagination")
	require.Equal(t, 1, pager.Length())
	oob, _ := pager.Attr("hx-swap-oob")
	assert.Equal(t, "true", oob)
	links := pager.Find("a.page-link")
	assert.Equal(t, 3, links.Length())
	assert.Equal(t, "2", links.Filter(".active").Text())
}

func TestBusinessesPageParsing(t *testing.T) {
	for _, raw := range []string{"", "abc", "0", "-3"} {
		api := &fakeLister{page: &models.BusinessPage{}}
		r, _ := setupRouter(t, api)

		get(r, "/businesses?page="+raw)

		assert.Equal(t, 1, api.gotPage, "page=%q", raw)
	}
}

func TestBusinessesFailureShowsInlineError(t *testing.T) {
	r, _ := setupRouter(t, &fakeLister{err: errors.New("boom")})

	w := get(r, "/businesses?page=1")

	require.Equal(t, http.StatusOK, w.Code)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, view.BusinessesFailed, doc.Find("p.no-recom").Text())
	assert.Zero(t, doc.Find("#businesses-pagination").Length())
}

func TestBusinessesStaleResponseIsDropped(t *testing.T) {
	api := &fakeLister{page: &models.BusinessPage{TotalPages: 1, CurrentPage: 1}}
	r, state := setupRouter(t, api)
	api.onCall = func() { state.Issue(sequence.Businesses) }

	w := get(r, "/businesses?page=1")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "none", w.Header().Get("HX-Reswap"))
}

func TestBusinessesBoundsUpstreamNumbers(t *testing.T) {
	api := &fakeLister{page: &models.BusinessPage{
		Businesses:  []models.Business{{ID: "1", Name: "Uno", Ranking: 1e19}},
		TotalPages:  1_000_000_000,
		CurrentPage: 1,
	}}
	r, _ := setupRouter(t, api)

	w := get(r, "/businesses?page=1")

	require.Equal(t, http.StatusOK, w.Code)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Contains(t, doc.Find(".business-card .ranking").Text(), "★★★★★ (")
	assert.Equal(t, view.MaxPageLinks, doc.Find("#businesses-pagination a.page-link").Length())
}

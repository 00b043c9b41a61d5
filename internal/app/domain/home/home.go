package home

import (
	"github.com/gin-gonic/gin"

	"github.com/FACorreiaa/negocios-templui/internal/app/domain"
	"github.com/FACorreiaa/negocios-templui/internal/app/middleware"
	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	"github.com/FACorreiaa/negocios-templui/internal/app/pages"
	"github.com/FACorreiaa/negocios-templui/internal/app/visitor"
)

type HomeHandlers struct {
	*domain.BaseHandler
}

func NewHomeHandlers(base *domain.BaseHandler) *HomeHandlers {
	return &HomeHandlers{BaseHandler: base}
}

// ShowHomePage renders the landing page. Every full load opens a new page
// with its own map instance, leaving other tabs untouched.
func (h *HomeHandlers) ShowHomePage(c *gin.Context) {
	instance, ok := visitor.OpenPage(c).MapAdapter().InitMap(nil)

	content := pages.HomePage(pages.HomeProps{
		UserID:     middleware.GetUserIDFromContext(c),
		Map:        instance,
		HasMap:     ok,
		Categories: models.Categories,
	})
	h.RenderPage(c, "Negocios recomendados", "Inicio", content)
}

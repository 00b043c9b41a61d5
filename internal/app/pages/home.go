package pages

import (
	"context"
	"net/url"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/negocios-templui/internal/app/components"
	"github.com/FACorreiaa/negocios-templui/internal/app/components/business"
	"github.com/FACorreiaa/negocios-templui/internal/app/components/mapview"
	"github.com/FACorreiaa/negocios-templui/internal/app/components/pagination"
	"github.com/FACorreiaa/negocios-templui/internal/app/domain/maps"
	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	"github.com/FACorreiaa/negocios-templui/internal/app/view"
)

type HomeProps struct {
	UserID     string
	Map        maps.Instance
	HasMap     bool
	Categories []string
}

// InitialRecommendationsURL loads personal recommendations for a known user
// and the popular list otherwise.
func InitialRecommendationsURL(userID string) string {
	query := userID
	if query == "" {
		query = models.PopularQuery
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("type", string(models.ByUserID))
	return "/recommendations?" + params.Encode()
}

func HomePage(props HomeProps) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		w.Raw(`<section class="hero">`,
			`<form class="search-box" hx-get="/recommendations" hx-target="#`, business.RecommendationsGridID, `" hx-swap="innerHTML">`,
			`<input type="hidden" name="type" value="`, string(models.BySearch), `">`,
			`<input type="text" name="query" placeholder="Busca restaurantes, hospedajes, sitios..." required>`,
			`<button type="submit">Buscar</button></form>`,
			`<div class="categories">`)
		for _, category := range props.Categories {
			params := url.Values{}
			params.Set("type", string(models.ByCategory))
			params.Set("query", category)
			w.Raw(`<a href="#" class="category-item" data-category="`, components.Text(category), `"`,
				` hx-get="`, components.Text("/recommendations?"+params.Encode()), `"`,
				` hx-target="#`, business.RecommendationsGridID, `" hx-swap="innerHTML">`,
				components.Text(category), `</a>`)
		}
		w.Raw(`</div></section>`,
			`<section id="recomendaciones" class="recommendations"><h2>Recomendados para ti</h2>`,
			`<div id="`, business.RecommendationsGridID, `" class="recommendations-grid"`,
			` hx-get="`, components.Text(InitialRecommendationsURL(props.UserID)), `" hx-trigger="load" hx-swap="innerHTML"></div>`,
			`</section>`,
			`<section class="map-section"><h2>Mapa</h2>`)
		w.Component(ctx, mapview.Container(props.Map, props.HasMap))
		w.Raw(`</section>`,
			`<section id="negocios" class="businesses"><h2>Negocios</h2>`,
			`<div id="`, business.BusinessesGridID, `" class="businesses-grid"></div>`)
		w.Component(ctx, pagination.Pagination(view.PaginationView{}, false))
		w.Raw(`</section>`)
	})
}

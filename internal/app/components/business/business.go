package business

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	"github.com/goccy/go-json"

	"github.com/FACorreiaa/negocios-templui/internal/app/components"
	"github.com/FACorreiaa/negocios-templui/internal/app/view"
)

const (
	RecommendationsGridID = "recommendations-grid"
	BusinessesGridID      = "businesses-grid"
)

// Grid renders the content of a card container: the cards, or the
// placeholder paragraph when there are none.
func Grid(grid view.CardGrid) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		if grid.Empty() {
			w.Raw(`<p class="no-recom">`, components.Text(grid.Placeholder), `</p>`)
			return
		}
		for _, card := range grid.Cards {
			w.Component(ctx, Card(card))
		}
	})
}

func Card(card view.Card) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		w.Raw(`<div class="business-card">`,
			`<img src="`, components.URL(card.ImageSrc), `" alt="`, components.Text(card.ImageAlt), `">`,
			`<div class="card-content">`,
			`<h3>`, components.Text(card.Name), `</h3>`,
			`<p>`, components.Text(card.Category), `</p>`,
			`<p class="ranking">`, components.Text(card.Stars.String()), ` (`, components.Text(card.Ranking), `)</p>`)
		w.Component(ctx, RatingStars(card.Rating))
		w.Raw(`<a href="`, components.URL(card.DetailURL), `">Ver más</a>`,
			`</div></div>`)
	})
}

// RatingStars renders the 1..5 rating control. Each star posts its value.
func RatingStars(control view.RatingControl) templ.Component {
	return components.Func(func(_ context.Context, w *components.Writer) {
		w.Raw(`<div class="rating-stars" data-negocio-id="`, components.Text(control.BusinessID), `">`)
		for _, v := range control.Values {
			vals, err := json.Marshal(map[string]any{"negocio_id": control.BusinessID, "puntuacion": v})
			if err != nil {
				continue
			}
			w.Raw(`<span class="star" data-value="`, strconv.Itoa(v), `"`,
				` hx-post="/ratings" hx-swap="none" hx-vals="`, components.Text(string(vals)), `"`,
				` title="`, strconv.Itoa(v), `">`, view.FullStar, `</span>`)
		}
		w.Raw(`</div>`)
	})
}

package pagination

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/negocios-templui/internal/app/components"
	"github.com/FACorreiaa/negocios-templui/internal/app/view"
)

const ContainerID = "businesses-pagination"

// Pagination renders the page links; when oob is set the element replaces
// the existing control out of band.
func Pagination(p view.PaginationView, oob bool) templ.Component {
	return components.Func(func(_ context.Context, w *components.Writer) {
		w.Raw(`<div id="`, ContainerID, `" class="pagination"`)
		if oob {
			w.Raw(` hx-swap-oob="true"`)
		}
		w.Raw(`>`)
		for _, link := range p.Links {
			class := "page-link"
			if link.Active {
				class = components.Classes(class, "active")
			}
			w.Raw(`<a href="#" class="`, components.Text(class), `"`,
				` hx-get="/businesses?page=`, strconv.Itoa(link.Number), `"`,
				` hx-target="#businesses-grid" hx-swap="innerHTML">`,
				components.Text(link.Label), `</a>`)
		}
		w.Raw(`</div>`)
	})
}

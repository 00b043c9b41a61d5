package pages

import (
	"context"

	"github.com/a-h/templ"
	"github.com/goccy/go-json"

	"github.com/FACorreiaa/negocios-templui/internal/app/components"
	"github.com/FACorreiaa/negocios-templui/internal/app/components/toast"
	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	"github.com/FACorreiaa/negocios-templui/internal/app/visitor"
)

const (
	htmxSrc       = "https://unpkg.com/htmx.org@2.0.4"
	leafletCSS    = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	leafletScript = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
)

// LayoutPage renders the full document around data.Content.
func LayoutPage(data models.LayoutTempl) templ.Component {
	return components.Func(func(ctx context.Context, w *components.Writer) {
		w.Raw(`<!DOCTYPE html><html lang="es"><head>`,
			`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`, components.Text(data.Title), `</title>`,
			`<link rel="stylesheet" href="`, leafletCSS, `">`,
			`<link rel="stylesheet" href="/assets/css/app.css">`,
			`<script src="`, htmxSrc, `" defer></script>`,
			`<script src="`, leafletScript, `" defer></script>`,
			`<script src="/assets/js/app.js" defer></script>`,
			`</head>`,
			`<body data-user-id="`, components.Text(data.UserID()), `"`)
		if data.PageID != "" {
			if headers, err := json.Marshal(map[string]string{visitor.PageHeader: data.PageID}); err == nil {
				w.Raw(` hx-headers="`, components.Text(string(headers)), `"`)
			}
		}
		w.Raw(`>`)
		w.Component(ctx, navbar(data))
		w.Raw(`<main>`)
		w.Component(ctx, data.Content)
		w.Raw(`</main>`)
		w.Component(ctx, toast.Container(data.Flash))
		w.Component(ctx, data.Widgets)
		w.Raw(`</body></html>`)
	})
}

func navbar(data models.LayoutTempl) templ.Component {
	return components.Func(func(_ context.Context, w *components.Writer) {
		w.Raw(`<header class="navbar"><a class="brand" href="/">El Carmen</a>`,
			`<button class="menu-toggle" type="button" aria-label="Menú"`,
			` hx-on:click="document.querySelector('.nav-menu ul').classList.toggle('show')">☰</button>`,
			`<nav class="nav-menu"><ul>`)
		for _, item := range data.Nav.Items {
			class := "nav-link"
			if item.Name == data.ActiveNav {
				class = components.Classes(class, "active")
			}
			w.Raw(`<li><a class="`, components.Text(class), `" href="`, components.URL(item.URL), `"`)
			if item.URL == "#negocios" {
				w.Raw(` hx-get="/businesses?page=1" hx-target="#businesses-grid" hx-swap="innerHTML"`)
			}
			w.Raw(`>`, components.Text(item.Name), `</a></li>`)
		}
		w.Raw(`</ul></nav></header>`)
	})
}
